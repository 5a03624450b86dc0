package registration

var districts = []string{
	"Kolkata",
	"Howrah",
	"North 24 Parganas",
	"South 24 Parganas",
	"Hooghly",
	"Nadia",
	"Murshidabad",
	"Birbhum",
	"Burdwan",
	"Midnapore",
	"Bankura",
	"Purulia",
	"Darjeeling",
	"Jalpaiguri",
	"Cooch Behar",
	"Malda",
	"South Dinajpur",
	"North Dinajpur",
}

// Districts returns the selectable district options in display order. The
// district rule only checks for a non-blank value; the list constrains the
// control, not the validator.
func Districts() []string {
	return append([]string(nil), districts...)
}

