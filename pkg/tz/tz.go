package tz

import "time"

// Paris is the Europe/Paris location (CET/CEST with automatic DST). Reports
// and announcements are stamped in festival-local time.
var Paris *time.Location

func init() {
	var err error
	Paris, err = time.LoadLocation("Europe/Paris")
	if err != nil {
		panic("tz: load Europe/Paris: " + err.Error())
	}
}

// Stamp formats t as a Paris-local "jj/mm/aaaa à hh:mm" timestamp.
func Stamp(t time.Time) string {
	return t.In(Paris).Format("02/01/2006 à 15:04")
}
