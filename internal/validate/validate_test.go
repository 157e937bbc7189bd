package validate

import "testing"

func TestUpload(t *testing.T) {
	cases := []struct {
		name     string
		filename string
		size     int64
		max      int64
		wantErr  bool
	}{
		{"raw log", "fight.evtc", 1024, 1 << 20, false},
		{"zipped log", "fight.zevtc", 1024, 1 << 20, false},
		{"double extension", "fight.evtc.zip", 1024, 1 << 20, false},
		{"uppercase", "FIGHT.EVTC", 1024, 1 << 20, false},
		{"wrong extension", "fight.exe", 1024, 1 << 20, true},
		{"no extension", "fight", 1024, 1 << 20, true},
		{"empty", "fight.evtc", 0, 1 << 20, true},
		{"oversized", "fight.evtc", 2 << 20, 1 << 20, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Upload(tc.filename, tc.size, tc.max)
			if (err != nil) != tc.wantErr {
				t.Errorf("Upload(%q, %d, %d) err = %v, wantErr %v", tc.filename, tc.size, tc.max, err, tc.wantErr)
			}
		})
	}
}
