package models

// ContentDump mirrors the content API's collection payloads. Each field is
// the list of resources from one collection endpoint.
type ContentDump struct {
	SRSSystems  []SRSSystem  `json:"srs_systems"`
	Subjects    []Subject    `json:"subjects"`
	Assignments []Assignment `json:"assignments"`
}

// ImportSummary counts what an import stored.
type ImportSummary struct {
	SRSSystems  int `json:"srs_systems"`
	Subjects    int `json:"subjects"`
	Assignments int `json:"assignments"`
}
