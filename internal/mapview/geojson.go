package mapview

import (
	"atm-locator-service/internal/domain"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// FeatureCollection renders markers as points and overlays as line strings.
func (m *Map) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, mk := range m.markers {
		f := geojson.NewFeature(orb.Point{mk.Location.Lon, mk.Location.Lat})
		f.ID = mk.ID
		f.Properties["role"] = mk.Role.String()
		f.Properties["title"] = mk.Title
		f.Properties["popup_title"] = mk.Popup.Title
		f.Properties["popup_lines"] = append([]string(nil), mk.Popup.Lines...)
		if mk.Popup.RouteInfo != "" {
			f.Properties["route_info"] = mk.Popup.RouteInfo
		}
		fc.Append(f)
	}

	for _, p := range m.polylines {
		f := geojson.NewFeature(lineString(p.Path))
		f.ID = p.ID
		f.Properties["color"] = p.Color
		f.Properties["weight"] = p.Weight
		fc.Append(f)
	}

	return fc
}

func lineString(path []domain.Coordinates) orb.LineString {
	ls := make(orb.LineString, 0, len(path))
	for _, c := range path {
		ls = append(ls, orb.Point{c.Lon, c.Lat})
	}
	return ls
}
