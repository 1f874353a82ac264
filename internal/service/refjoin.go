package service

import (
	"fmt"
	"strings"

	"github.com/minwoo-jeong/asreco/internal/model"
	"github.com/minwoo-jeong/asreco/internal/schema"
	"github.com/minwoo-jeong/asreco/internal/tabular"
)

// refIndex maps a string-coerced key to the first reference row carrying it.
// Later occurrences of a duplicate key are ignored; that is the documented
// extent of conflict resolution.
func refIndex(ref *tabular.Table, keyCol string) (map[string]int, int) {
	index := make(map[string]int, ref.NumRows())
	dups := 0
	for i := 0; i < ref.NumRows(); i++ {
		key := canonicalID(ref.At(i, keyCol).Text())
		if key == "" {
			continue
		}
		if _, seen := index[key]; seen {
			dups++
			continue
		}
		index[key] = i
	}
	return index, dups
}

// JoinAssetRegistry left-joins the maintenance table against the asset
// registry on 관리번호, bringing over brand, model, year, acquisition cost
// and the material description. Where both sides supply brand or model the
// maintenance side wins and the registry fills its nulls. Brand is always
// present afterwards, defaulting to 기타. The material description is split
// into fuel, drive type, load capacity and mast, and 브랜드_모델 is composed
// whenever brand and model are both known.
func JoinAssetRegistry(maint, assets *tabular.Table) (*tabular.Table, []model.Issue) {
	if maint == nil {
		return nil, nil
	}
	if assets == nil {
		return maint, []model.Issue{{
			Stage:   stageAssetJoin,
			Kind:    model.IssueMissingReference,
			Message: "asset registry not loaded; brand and model fields skipped",
		}}
	}
	if !maint.HasColumn(schema.ColAssetID) || !assets.HasColumn(schema.ColAssetID) {
		return maint, []model.Issue{{
			Stage:   stageAssetJoin,
			Kind:    model.IssueMissingColumn,
			Message: schema.ColAssetID + " missing on one side; asset join skipped",
		}}
	}

	var issues []model.Issue
	index, dups := refIndex(assets, schema.ColAssetID)
	if dups > 0 {
		issues = append(issues, model.Issue{
			Stage:   stageAssetJoin,
			Kind:    model.IssueKeyCollision,
			Message: fmt.Sprintf("%d duplicate %s keys in asset registry; first occurrence kept", dups, schema.ColAssetID),
		})
	}

	out := maint.Clone()

	// Registry attribute -> output column. Brand and model are renamed on the
	// way over; the rest keep their names.
	attrs := []struct{ refCol, outCol string }{
		{schema.ColManufacturer, schema.ColBrand},
		{schema.ColManufacturerModel, schema.ColModel},
		{schema.ColMakeYear, schema.ColMakeYear},
		{schema.ColAcquisitionCost, schema.ColAcquisitionCost},
		{schema.ColMaterialDesc, schema.ColMaterialDesc},
	}
	for _, a := range attrs {
		if !assets.HasColumn(a.refCol) {
			continue
		}
		out.AddColumn(a.outCol, tabular.Null())
		for i := 0; i < out.NumRows(); i++ {
			// Primary side wins; the registry only fills nulls.
			if !out.At(i, a.outCol).IsNull() {
				continue
			}
			key := canonicalID(out.At(i, schema.ColAssetID).Text())
			if refRow, ok := index[key]; ok {
				out.Set(i, a.outCol, assets.At(refRow, a.refCol))
			}
		}
	}

	// Brand is guaranteed downstream. Synthesize it even when neither side
	// had one, and backfill the sentinel for unmatched assets.
	out.AddColumn(schema.ColBrand, tabular.String(schema.DefaultBrand))
	for i := 0; i < out.NumRows(); i++ {
		if out.At(i, schema.ColBrand).IsNull() {
			out.Set(i, schema.ColBrand, tabular.String(schema.DefaultBrand))
		}
	}

	splitMaterialDesc(out)
	composeBrandModel(out)
	return out, issues
}

// splitMaterialDesc tokenizes 자재내역 on single spaces into at most four
// sub-fields; the fourth keeps any remainder. Rows with fewer tokens get
// nulls for the tail, best effort by design.
func splitMaterialDesc(t *tabular.Table) {
	if !t.HasColumn(schema.ColMaterialDesc) {
		return
	}
	any := false
	for i := 0; i < t.NumRows(); i++ {
		if !t.At(i, schema.ColMaterialDesc).IsNull() {
			any = true
			break
		}
	}
	if !any {
		return
	}
	subCols := []string{schema.ColFuel, schema.ColDriveType, schema.ColLoadCapacity, schema.ColMast}
	for _, c := range subCols {
		t.AddColumn(c, tabular.Null())
	}
	for i := 0; i < t.NumRows(); i++ {
		v := t.At(i, schema.ColMaterialDesc)
		if v.IsNull() {
			continue
		}
		parts := strings.SplitN(v.Text(), " ", len(subCols))
		for j, c := range subCols {
			if j < len(parts) && strings.TrimSpace(parts[j]) != "" {
				t.Set(i, c, tabular.String(parts[j]))
			}
		}
	}
}

func composeBrandModel(t *tabular.Table) {
	if !t.HasColumns(schema.ColBrand, schema.ColModel) {
		return
	}
	t.AddColumn(schema.ColBrandModel, tabular.Null())
	for i := 0; i < t.NumRows(); i++ {
		brand := t.At(i, schema.ColBrand)
		mdl := t.At(i, schema.ColModel)
		if brand.IsNull() || mdl.IsNull() {
			continue
		}
		t.Set(i, schema.ColBrandModel, tabular.String(brand.Text()+"_"+mdl.Text()))
	}
}

// MapAffiliation left-joins a table against the org chart, resolving an
// identity column to an affiliation. Maintenance tables carry 정비자번호 and
// get 정비자소속; parts tables carry 출고자 and get 출고자소속.
func MapAffiliation(t, org *tabular.Table) (*tabular.Table, []model.Issue) {
	if t == nil {
		return nil, nil
	}
	if org == nil {
		return t, []model.Issue{{
			Stage:   stageOrgJoin,
			Kind:    model.IssueMissingReference,
			Message: "org chart not loaded; affiliation mapping skipped",
		}}
	}
	if !org.HasColumns(schema.ColEmployeeID, schema.ColAffiliation) {
		return t, []model.Issue{{
			Stage:   stageOrgJoin,
			Kind:    model.IssueMissingColumn,
			Message: "org chart lacks " + schema.ColEmployeeID + "/" + schema.ColAffiliation + "; affiliation mapping skipped",
		}}
	}

	var idCol, outCol string
	switch {
	case t.HasColumn(schema.ColTechnicianID):
		idCol, outCol = schema.ColTechnicianID, schema.ColTechAffiliation
	case t.HasColumn(schema.ColIssuerID):
		idCol, outCol = schema.ColIssuerID, schema.ColIssuerAffiliation
	default:
		return t, []model.Issue{{
			Stage:   stageOrgJoin,
			Kind:    model.IssueMissingColumn,
			Message: "no identity column (" + schema.ColTechnicianID + " or " + schema.ColIssuerID + "); affiliation mapping skipped",
		}}
	}

	var issues []model.Issue
	index, dups := refIndex(org, schema.ColEmployeeID)
	if dups > 0 {
		issues = append(issues, model.Issue{
			Stage:   stageOrgJoin,
			Kind:    model.IssueKeyCollision,
			Message: fmt.Sprintf("%d duplicate %s keys in org chart; first occurrence kept", dups, schema.ColEmployeeID),
		})
	}

	out := t.Clone()
	out.AddColumn(outCol, tabular.Null())
	for i := 0; i < out.NumRows(); i++ {
		id := canonicalID(out.At(i, idCol).Text())
		if id == "" {
			continue
		}
		if refRow, ok := index[id]; ok {
			out.Set(i, outCol, org.At(refRow, schema.ColAffiliation))
		}
	}
	return out, issues
}
