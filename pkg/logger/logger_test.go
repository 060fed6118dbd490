package logger_test

import (
	"context"
	"testing"

	"github.com/kiloran/phenrv/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInitAndLevels(t *testing.T) {
	Convey("Given an initialized global logger", t, func() {
		So(logger.Init(), ShouldBeNil)

		Convey("Then Get returns a usable logger", func() {
			l := logger.Get()
			So(l, ShouldNotBeNil)
			l.Info(context.Background(), "hello", logger.String("k", "v"))
		})

		Convey("Then valid level strings are accepted", func() {
			for _, lvl := range []string{"debug", "info", "warn", "warning", "error", "", "  INFO "} {
				So(logger.SetLevelString(lvl), ShouldBeNil)
			}
		})

		Convey("Then an unknown level string is rejected", func() {
			So(logger.SetLevelString("verbose"), ShouldNotBeNil)
		})

		Convey("Then Named returns a scoped logger", func() {
			l := logger.Named("sim")
			So(l, ShouldNotBeNil)
			l.Debug(context.Background(), "scoped", logger.Int("n", 1))
		})

		Convey("Then Sync is a no-op", func() {
			So(logger.Sync(), ShouldBeNil)
		})
	})
}

func TestFieldConstructors(t *testing.T) {
	Convey("Given the field helpers", t, func() {
		So(logger.String("a", "b").Key, ShouldEqual, "a")
		So(logger.Int("n", 3).Value, ShouldEqual, 3)
		So(logger.Int64("n", int64(9)).Value, ShouldEqual, int64(9))
		So(logger.Float64("f", 1.5).Value, ShouldEqual, 1.5)
		So(logger.Error(nil).Key, ShouldEqual, "error")
	})
}
