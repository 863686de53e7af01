package golearn

import (
	"testing"

	"github.com/sjwhitworth/golearn/base"
	. "github.com/smartystreets/goconvey/convey"

	p "github.com/wdm0006/prepkit/pkg/prep"
)

func processed() p.Dataset {
	return p.Dataset{
		p.RecordOf("y", "yes", "age", 25.0, "city", "NY"),
		p.RecordOf("y", "no", "age", 30.0, "city", "LA"),
		p.RecordOf("y", "yes", "age", 35.0, "city", "NY"),
	}
}

func TestToDenseInstances(t *testing.T) {
	Convey("Given a processed dataset with a target column", t, func() {
		inst, err := ToDenseInstances(processed(), "y")

		Convey("It converts without error", func() {
			So(err, ShouldBeNil)
			cols, rows := inst.Size()
			So(cols, ShouldEqual, 3)
			So(rows, ShouldEqual, 3)
		})

		Convey("The target becomes the class attribute", func() {
			classes := inst.AllClassAttributes()
			So(len(classes), ShouldEqual, 1)
			So(classes[0].GetName(), ShouldEqual, "y")
			So(base.GetClass(inst, 1), ShouldEqual, "no")
		})

		Convey("Numeric columns are float attributes", func() {
			attrs := inst.AllAttributes()
			_, isFloat := attrs[0].(*base.FloatAttribute)
			So(attrs[0].GetName(), ShouldEqual, "age")
			So(isFloat, ShouldBeTrue)
		})
	})
}

func TestRoundTrip(t *testing.T) {
	Convey("Converting back yields the same cells", t, func() {
		inst, err := ToDenseInstances(processed(), "y")
		So(err, ShouldBeNil)
		ds, err := FromDenseInstances(inst)
		So(err, ShouldBeNil)
		So(len(ds), ShouldEqual, 3)

		age, ok := ds[2].Value("age").Float()
		So(ok, ShouldBeTrue)
		So(age, ShouldEqual, 35.0)
		city, _ := ds[1].Value("city").Str()
		So(city, ShouldEqual, "LA")
		So(ds[0].Columns(), ShouldResemble, []string{"age", "city", "y"})
	})
}

func TestEmptyDataset(t *testing.T) {
	Convey("An empty dataset is rejected", t, func() {
		_, err := ToDenseInstances(nil, "y")
		So(err, ShouldNotBeNil)
	})
}
