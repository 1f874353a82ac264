package service

import (
	"strings"

	"github.com/minwoo-jeong/asreco/internal/model"
	"github.com/minwoo-jeong/asreco/internal/schema"
	"github.com/minwoo-jeong/asreco/internal/tabular"
)

// The 17 top-level administrative regions. A site string only counts as an
// address when it starts with one of these.
var regionPrefixes = map[string]struct{}{
	"서울": {}, "부산": {}, "대구": {}, "인천": {}, "광주": {}, "대전": {},
	"울산": {}, "세종": {}, "경기": {}, "강원": {}, "충북": {}, "충남": {},
	"전북": {}, "전남": {}, "경북": {}, "경남": {}, "제주": {},
}

// City/county/district markers the second token must end with.
var districtSuffixes = []string{"시", "군", "구"}

// extractRegion parses a free-text site field. It returns (region, address)
// when the text looks like an address, and ("", "") otherwise.
func extractRegion(site string) (string, string) {
	site = strings.TrimSpace(site)
	tokens := strings.Fields(site)
	if len(tokens) < 2 {
		return "", ""
	}
	if _, ok := regionPrefixes[tokens[0]]; !ok {
		return "", ""
	}
	for _, suffix := range districtSuffixes {
		if strings.HasSuffix(tokens[1], suffix) {
			return tokens[0], site
		}
	}
	return "", ""
}

// ExtractRegions derives 지역 and 주소 from the 현장 column, and fills 현장명
// with the raw text for rows where address extraction failed. The same input
// column thus serves as either a parseable address or an opaque client name,
// never both.
func ExtractRegions(t *tabular.Table) (*tabular.Table, []model.Issue) {
	if t == nil {
		return nil, nil
	}
	if !t.HasColumn(schema.ColSite) {
		return t, []model.Issue{{
			Stage:   stageRegion,
			Kind:    model.IssueMissingColumn,
			Message: schema.ColSite + " column absent; region extraction skipped",
		}}
	}

	out := t.Clone()
	out.AddColumn(schema.ColRegion, tabular.Null())
	out.AddColumn(schema.ColAddress, tabular.Null())
	out.AddColumn(schema.ColSiteName, tabular.Null())
	for i := 0; i < out.NumRows(); i++ {
		site := out.At(i, schema.ColSite)
		if site.IsNull() {
			continue
		}
		region, address := extractRegion(site.Text())
		if address == "" {
			// Not an address: treat the raw text as a client/site name.
			out.Set(i, schema.ColRegion, tabular.Null())
			out.Set(i, schema.ColAddress, tabular.Null())
			out.Set(i, schema.ColSiteName, site)
			continue
		}
		out.Set(i, schema.ColRegion, tabular.String(region))
		out.Set(i, schema.ColAddress, tabular.String(address))
		out.Set(i, schema.ColSiteName, tabular.Null())
	}
	return out, nil
}
