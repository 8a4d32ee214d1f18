package model

var PositionOptions = []string{
	"Desktop Support Specialist",
	"Network Engineer",
}

var CertificationOptions = []string{
	"CompTIA A+",
	"CompTIA Network+",
	"CompTIA Security+",
	"Cisco CCNA",
	"Cisco CCNP",
	"Microsoft 365 Certified: Modern Desktop Administrator",
	"ITIL 4 Foundation",
	"Fortinet NSE 4",
}
