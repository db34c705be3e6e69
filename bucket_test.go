package folio

import (
	"testing"
)

func TestResolutionFor(t *testing.T) {
	testCases := []struct {
		name     string
		start    string
		end      string
		wantRes  Resolution
		wantStep int
	}{
		{"six years", "2015-01-01", "2021-06-30", Yearly, 1},
		{"thirty-six years", "1970-01-01", "2005-12-31", Yearly, 2},
		{"ninety years", "1930-01-01", "2019-12-31", Yearly, 3},
		{"one-thirty years", "1890-01-01", "2019-12-31", Yearly, 4},
		{"seven months", "2024-01-15", "2024-08-20", Monthly, 1},
		{"forty-two months", "2020-01-01", "2023-06-30", Monthly, 2},
		{"seven weeks", "2024-06-03", "2024-07-20", Weekly, 1},
		{"ten days", "2024-07-01", "2024-07-10", Daily, 1},
		{"thirty-two days spanning few fridays", "2024-07-06", "2024-08-07", Daily, 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res, step := resolutionFor(MustParseDate(tc.start), MustParseDate(tc.end))
			if res != tc.wantRes || step != tc.wantStep {
				t.Errorf("resolutionFor(%s, %s) = %s/%d, want %s/%d", tc.start, tc.end, res, step, tc.wantRes, tc.wantStep)
			}
		})
	}
}

func TestBucketRange_Yearly(t *testing.T) {
	buckets, res, err := BucketRange(MustParseDate("2015-01-01"), MustParseDate("2021-06-30"))
	if err != nil {
		t.Fatalf("BucketRange() error: %v", err)
	}
	if res != Yearly {
		t.Fatalf("resolution = %s, want yearly", res)
	}

	// Year-end boundaries, weekends snapped to the preceding Friday, and the
	// final boundary forced to the range end.
	want := []Bucket{
		{"2015", MustParseDate("2015-12-31")},
		{"2016", MustParseDate("2016-12-30")}, // Dec 31st is a Saturday
		{"2017", MustParseDate("2017-12-29")}, // Dec 31st is a Sunday
		{"2018", MustParseDate("2018-12-31")},
		{"2019", MustParseDate("2019-12-31")},
		{"2020", MustParseDate("2020-12-31")},
		{"2021", MustParseDate("2021-06-30")},
	}
	assertBuckets(t, buckets, want)
}

func TestBucketRange_Monthly(t *testing.T) {
	buckets, res, err := BucketRange(MustParseDate("2024-01-15"), MustParseDate("2024-08-20"))
	if err != nil {
		t.Fatalf("BucketRange() error: %v", err)
	}
	if res != Monthly {
		t.Fatalf("resolution = %s, want monthly", res)
	}

	want := []Bucket{
		{"2024-01", MustParseDate("2024-01-31")},
		{"2024-02", MustParseDate("2024-02-29")},
		{"2024-03", MustParseDate("2024-03-29")}, // the 31st is a Sunday
		{"2024-04", MustParseDate("2024-04-30")},
		{"2024-05", MustParseDate("2024-05-31")},
		{"2024-06", MustParseDate("2024-06-28")}, // the 30th is a Sunday
		{"2024-07", MustParseDate("2024-07-31")},
		{"2024-08", MustParseDate("2024-08-20")},
	}
	assertBuckets(t, buckets, want)
}

func TestBucketRange_Weekly(t *testing.T) {
	buckets, res, err := BucketRange(MustParseDate("2024-06-03"), MustParseDate("2024-07-20"))
	if err != nil {
		t.Fatalf("BucketRange() error: %v", err)
	}
	if res != Weekly {
		t.Fatalf("resolution = %s, want weekly", res)
	}

	// Friday anchors; the forced final boundary (a Saturday) snaps onto the
	// last Friday, duplicating the date but keeping the range end covered.
	want := []Bucket{
		{"2024-06-07", MustParseDate("2024-06-07")},
		{"2024-06-14", MustParseDate("2024-06-14")},
		{"2024-06-21", MustParseDate("2024-06-21")},
		{"2024-06-28", MustParseDate("2024-06-28")},
		{"2024-07-05", MustParseDate("2024-07-05")},
		{"2024-07-12", MustParseDate("2024-07-12")},
		{"2024-07-19", MustParseDate("2024-07-19")},
		{"2024-07-19", MustParseDate("2024-07-19")},
	}
	assertBuckets(t, buckets, want)
}

func TestBucketRange_Daily(t *testing.T) {
	buckets, res, err := BucketRange(MustParseDate("2024-07-01"), MustParseDate("2024-07-10"))
	if err != nil {
		t.Fatalf("BucketRange() error: %v", err)
	}
	if res != Daily {
		t.Fatalf("resolution = %s, want daily", res)
	}
	if len(buckets) != 10 {
		t.Fatalf("len(buckets) = %d, want 10", len(buckets))
	}
	// The weekend of July 6-7 snaps to Friday the 5th.
	if buckets[5].On != MustParseDate("2024-07-05") || buckets[6].On != MustParseDate("2024-07-05") {
		t.Errorf("weekend buckets = %s and %s, want both 2024-07-05", buckets[5].On, buckets[6].On)
	}
}

func TestBucketRange_InvalidRange(t *testing.T) {
	if _, _, err := BucketRange(MustParseDate("2024-07-10"), MustParseDate("2024-07-01")); err == nil {
		t.Fatal("BucketRange() with end before start should fail")
	}
}

func assertBuckets(t *testing.T, got, want []Bucket) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("len(buckets) = %d, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("buckets[%d] = {%q %s}, want {%q %s}", i, got[i].Label, got[i].On, want[i].Label, want[i].On)
		}
	}
}
