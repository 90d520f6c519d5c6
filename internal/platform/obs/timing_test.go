package obs

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"
)

func TestTimeLogsOperation(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	ctx := WithRequestID(context.Background(), "abc-123")

	func() (err error) {
		defer Time(ctx, "overpass.NearbyATMs")(&err)
		return errors.New("boom")
	}()

	out := buf.String()
	for _, want := range []string{"req_id=abc-123", "op=overpass.NearbyATMs", "err=boom", "dur_ms="} {
		if !strings.Contains(out, want) {
			t.Errorf("log line %q missing %q", out, want)
		}
	}
}

func TestRequestIDMissing(t *testing.T) {
	if got := RequestID(context.Background()); got != "" {
		t.Fatalf("RequestID = %q, want empty", got)
	}
}
