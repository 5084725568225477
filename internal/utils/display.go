package utils

import (
	"fmt"
	"math"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

const referenceDPI = 96.0

// XConn is the shared X server connection, opened by InitX11.
var XConn *xgb.Conn

func InitX11() error {
	var err error
	XConn, err = xgb.NewConn()
	return err
}

// CloseX11 drops the shared X connection, if any.
func CloseX11() {
	if XConn != nil {
		XConn.Close()
		XConn = nil
	}
}

// DisplayPixelRatio estimates the device pixel ratio of the default X screen
// from its physical size, relative to a 96 dpi reference display.
func DisplayPixelRatio() (float64, error) {
	if XConn == nil {
		if err := InitX11(); err != nil {
			return 1, fmt.Errorf("connect to X server: %w", err)
		}
	}

	screen := xproto.Setup(XConn).DefaultScreen(XConn)
	return PixelRatioFromScreen(int(screen.WidthInPixels), int(screen.WidthInMillimeters))
}

// PixelRatioFromScreen converts a screen width in pixels and millimeters to a
// pixel ratio rounded to the nearest quarter. Ratios below 1 are clamped to 1.
func PixelRatioFromScreen(widthPixels, widthMillimeters int) (float64, error) {
	if widthPixels <= 0 || widthMillimeters <= 0 {
		return 1, fmt.Errorf("screen reports no physical size (%dpx, %dmm)", widthPixels, widthMillimeters)
	}

	dpi := float64(widthPixels) / (float64(widthMillimeters) / 25.4)
	ratio := math.Round(dpi/referenceDPI*4) / 4
	if ratio < 1 {
		ratio = 1
	}
	return ratio, nil
}
