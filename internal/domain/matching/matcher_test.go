package matching_test

import (
	"errors"
	"testing"

	"github.com/kiloran/phenrv/internal/domain/matching"
	"github.com/kiloran/phenrv/internal/domain/pattern"
	. "github.com/smartystreets/goconvey/convey"
)

// near is within any reasonable epsilon of the baseline; far is a full
// normalized unit away on the brightness axis.
func nearAndFar() (near, far, target pattern.Pattern) {
	target = pattern.Zeros()
	near = pattern.Zeros()
	far = pattern.Zeros()
	far.Brightness = 1
	return near, far, target
}

func TestNewConfig(t *testing.T) {
	Convey("Given matching parameters", t, func() {
		Convey("When they are valid", func() {
			cfg, err := matching.NewConfig(0.2, 3)
			So(err, ShouldBeNil)
			So(cfg.Epsilon(), ShouldEqual, 0.2)
			So(cfg.WindowSize(), ShouldEqual, 3)
		})

		Convey("When epsilon is zero", func() {
			_, err := matching.NewConfig(0, 1)
			So(err, ShouldBeNil)
		})

		Convey("When epsilon is negative", func() {
			_, err := matching.NewConfig(-0.1, 3)
			So(errors.Is(err, matching.ErrInvalidConfig), ShouldBeTrue)
		})

		Convey("When the window size is zero", func() {
			_, err := matching.NewConfig(0.2, 0)
			So(errors.Is(err, matching.ErrInvalidConfig), ShouldBeTrue)
		})

		Convey("When the window size is negative", func() {
			_, err := matching.NewConfig(0.2, -5)
			So(errors.Is(err, matching.ErrInvalidConfig), ShouldBeTrue)
		})
	})
}

func TestObserveWindowRule(t *testing.T) {
	Convey("Given a matcher with window size 3", t, func() {
		cfg, err := matching.NewConfig(0.5, 3)
		So(err, ShouldBeNil)
		m := matching.New(cfg)
		near, far, target := nearAndFar()

		Convey("When fed within, within, outside, within, within, within", func() {
			stream := []pattern.Pattern{near, near, far, near, near, near}
			var got []bool
			for _, p := range stream {
				got = append(got, m.Observe(p, target))
			}

			Convey("Then only the final observation declares a match", func() {
				So(got, ShouldResemble, []bool{false, false, false, false, false, true})
			})
		})

		Convey("When fed fewer than window-size observations", func() {
			So(m.Observe(near, target), ShouldBeFalse)
			So(m.Observe(near, target), ShouldBeFalse)

			Convey("Then the warm-up never matches even though all were within", func() {
				So(m.Observations(), ShouldEqual, 2)
			})
		})

		Convey("When the streak holds past the window", func() {
			for i := 0; i < 3; i++ {
				m.Observe(near, target)
			}

			Convey("Then the match persists on further within observations", func() {
				So(m.Observe(near, target), ShouldBeTrue)
				So(m.Observe(near, target), ShouldBeTrue)
			})

			Convey("Then one outside observation breaks the streak", func() {
				So(m.Observe(far, target), ShouldBeFalse)

				Convey("And a full fresh window is required again", func() {
					So(m.Observe(near, target), ShouldBeFalse)
					So(m.Observe(near, target), ShouldBeFalse)
					So(m.Observe(near, target), ShouldBeTrue)
				})
			})
		})
	})
}

func TestObserveDegenerateWindows(t *testing.T) {
	Convey("Given a matcher with window size 1", t, func() {
		cfg, err := matching.NewConfig(0.5, 1)
		So(err, ShouldBeNil)
		m := matching.New(cfg)
		near, far, target := nearAndFar()

		Convey("Then it degenerates to a per-observation threshold test", func() {
			So(m.Observe(near, target), ShouldBeTrue)
			So(m.Observe(far, target), ShouldBeFalse)
			So(m.Observe(near, target), ShouldBeTrue)
		})
	})

	Convey("Given epsilon zero", t, func() {
		cfg, err := matching.NewConfig(0, 1)
		So(err, ShouldBeNil)
		m := matching.New(cfg)
		near, far, target := nearAndFar()

		Convey("Then only exact post-normalization equality matches", func() {
			So(m.Observe(near, target), ShouldBeTrue)
			So(m.Observe(far, target), ShouldBeFalse)
		})
	})
}

func TestObserveEpsilonBoundary(t *testing.T) {
	Convey("Given a measured pattern at distance exactly epsilon", t, func() {
		target := pattern.Zeros()
		measured := pattern.Zeros()
		measured.Brightness = 0.25 // exact in binary; distance is exactly 0.25

		Convey("When epsilon equals the distance", func() {
			cfg, err := matching.NewConfig(0.25, 1)
			So(err, ShouldBeNil)

			Convey("Then the boundary is inclusive", func() {
				So(matching.New(cfg).Observe(measured, target), ShouldBeTrue)
			})
		})

		Convey("When epsilon is just below the distance", func() {
			cfg, err := matching.NewConfig(0.2499, 1)
			So(err, ShouldBeNil)

			Convey("Then the observation is outside", func() {
				So(matching.New(cfg).Observe(measured, target), ShouldBeFalse)
			})
		})
	})
}

func TestReset(t *testing.T) {
	Convey("Given a matcher with a full matching window", t, func() {
		cfg, err := matching.NewConfig(0.5, 2)
		So(err, ShouldBeNil)
		m := matching.New(cfg)
		near, _, target := nearAndFar()
		m.Observe(near, target)
		So(m.Observe(near, target), ShouldBeTrue)

		Convey("When the session is reset", func() {
			m.Reset()

			Convey("Then the history is empty and warm-up applies again", func() {
				So(m.Observations(), ShouldEqual, 0)
				So(m.Observe(near, target), ShouldBeFalse)
				So(m.Observe(near, target), ShouldBeTrue)
			})
		})
	})
}
