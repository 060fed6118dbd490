package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	service "github.com/kiloran/phenrv/internal/app"
	"github.com/kiloran/phenrv/internal/domain/token"
	. "github.com/smartystreets/goconvey/convey"
)

func TestResolveTarget(t *testing.T) {
	Convey("Given the match command's target sources", t, func() {
		svc, err := service.New()
		So(err, ShouldBeNil)
		ctx := context.Background()
		const tokenHex = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

		Convey("When a target document is given", func() {
			dir := t.TempDir()
			path := filepath.Join(dir, "target.json")
			doc := `{"brightness":0.5,"color_temp":6500,"focal_distance":0.25,"volume":0.4,` +
				`"tempo":120,"pitch":440,"temperature":21.5,"movement":0.1,"arousal":0.7}`
			So(os.WriteFile(path, []byte(doc), 0o600), ShouldBeNil)

			got, err := resolveTarget(ctx, svc, path, "", "")
			So(err, ShouldBeNil)
			So(got.ColorTemp, ShouldEqual, 6500)
		})

		Convey("When only a token is given", func() {
			got, err := resolveTarget(ctx, svc, "", tokenHex, "alpha")
			So(err, ShouldBeNil)

			Convey("Then the target matches direct derivation", func() {
				tok, err := token.FromHex(tokenHex)
				So(err, ShouldBeNil)
				So(got, ShouldResemble, svc.DeriveTarget(ctx, tok, []byte("alpha")))
			})
		})

		Convey("When neither source is usable", func() {
			_, err := resolveTarget(ctx, svc, "", "nothex", "alpha")
			So(errors.Is(err, token.ErrInvalidFormat), ShouldBeTrue)
		})
	})
}
