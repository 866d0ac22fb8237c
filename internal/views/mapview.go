package views

import (
	"fmt"

	"dustbin-dashboard/internal/models"

	geojson "github.com/paulmach/go.geojson"
)

// SRM KTR campus
const (
	CenterLat   = 12.823084
	CenterLng   = 80.044794
	DefaultZoom = 16

	TileURL         = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	TileAttribution = `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`
)

// MapView is what the map renderer needs: viewport, tiles and one marker per bin
type MapView struct {
	Center      [2]float64                 `json:"center"`
	Zoom        int                        `json:"zoom"`
	TileURL     string                     `json:"tileUrl"`
	Attribution string                     `json:"attribution"`
	Bins        *geojson.FeatureCollection `json:"bins"`
}

// BinFeatures turns a snapshot into GeoJSON points (coordinates are [lng, lat])
func BinFeatures(bins []models.Bin) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, bin := range bins {
		f := geojson.NewPointFeature([]float64{bin.Lng, bin.Lat})
		f.ID = bin.ID
		f.SetProperty("serialNumber", bin.SerialNumber)
		f.SetProperty("fillPercentage", bin.FillPercentage)
		f.SetProperty("fillClass", FillClass(bin.FillPercentage))
		f.SetProperty("popupTitle", fmt.Sprintf("Dustbin %s", bin.SerialNumber))
		f.SetProperty("popupBody", fmt.Sprintf("Fill Level: %d%%", bin.FillPercentage))
		fc.AddFeature(f)
	}
	return fc
}

// BuildMapView assembles the map presentation for a snapshot
func BuildMapView(bins []models.Bin) MapView {
	return MapView{
		Center:      [2]float64{CenterLat, CenterLng},
		Zoom:        DefaultZoom,
		TileURL:     TileURL,
		Attribution: TileAttribution,
		Bins:        BinFeatures(bins),
	}
}
