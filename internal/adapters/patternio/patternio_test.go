package patternio_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/kiloran/phenrv/internal/adapters/patternio"
	"github.com/kiloran/phenrv/internal/domain/pattern"
	. "github.com/smartystreets/goconvey/convey"
)

const validDoc = `{
  "brightness": 0.5,
  "color_temp": 6500,
  "focal_distance": 0.25,
  "volume": 0.4,
  "tempo": 120,
  "pitch": 440,
  "temperature": 21.5,
  "movement": 0.1,
  "arousal": 0.7
}`

func TestDecodeTarget(t *testing.T) {
	Convey("Given a target pattern document", t, func() {
		Convey("When it is well-formed and in range", func() {
			p, err := patternio.DecodeTarget(strings.NewReader(validDoc))
			So(err, ShouldBeNil)
			So(p.Brightness, ShouldEqual, 0.5)
			So(p.ColorTemp, ShouldEqual, 6500)
			So(p.Pitch, ShouldEqual, 440)
		})

		Convey("When it is not JSON", func() {
			_, err := patternio.DecodeTarget(strings.NewReader("not json"))
			So(errors.Is(err, patternio.ErrInvalidFormat), ShouldBeTrue)
		})

		Convey("When it carries an unknown field", func() {
			doc := strings.Replace(validDoc, `"brightness"`, `"luminance"`, 1)
			_, err := patternio.DecodeTarget(strings.NewReader(doc))
			So(errors.Is(err, patternio.ErrInvalidFormat), ShouldBeTrue)
		})

		Convey("When an axis value is out of range", func() {
			doc := strings.Replace(validDoc, `"color_temp": 6500`, `"color_temp": 500`, 1)
			_, err := patternio.DecodeTarget(strings.NewReader(doc))
			So(errors.Is(err, patternio.ErrInvalidFormat), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "color_temp")
		})
	})
}

func TestStreamDecoder(t *testing.T) {
	Convey("Given a JSONL measured-pattern stream", t, func() {
		line := strings.ReplaceAll(validDoc, "\n", "")

		Convey("When it holds records separated by blank lines", func() {
			input := line + "\n\n" + line + "\n"
			dec := patternio.NewStreamDecoder(strings.NewReader(input))

			first, err := dec.Next()
			So(err, ShouldBeNil)
			So(first.Tempo, ShouldEqual, 120)

			_, err = dec.Next()
			So(err, ShouldBeNil)

			Convey("Then the stream ends with io.EOF", func() {
				_, err := dec.Next()
				So(err, ShouldEqual, io.EOF)
			})
		})

		Convey("When a record is malformed", func() {
			input := line + "\n{broken\n"
			dec := patternio.NewStreamDecoder(strings.NewReader(input))

			_, err := dec.Next()
			So(err, ShouldBeNil)

			Convey("Then the error names the offending line", func() {
				_, err := dec.Next()
				So(errors.Is(err, patternio.ErrInvalidFormat), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "line 2")
			})
		})

		Convey("When the stream is empty", func() {
			dec := patternio.NewStreamDecoder(strings.NewReader(""))
			_, err := dec.Next()
			So(err, ShouldEqual, io.EOF)
		})
	})
}

func TestWriteJSON(t *testing.T) {
	Convey("Given a derived pattern", t, func() {
		p := pattern.Zeros()
		p.Brightness = 0.5

		Convey("When written and decoded again", func() {
			var buf bytes.Buffer
			So(patternio.WriteJSON(&buf, p), ShouldBeNil)

			back, err := patternio.DecodeTarget(&buf)
			So(err, ShouldBeNil)

			Convey("Then the document round-trips", func() {
				So(back, ShouldResemble, p)
			})
		})
	})
}
