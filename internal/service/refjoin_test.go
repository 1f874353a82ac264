package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minwoo-jeong/asreco/internal/model"
	"github.com/minwoo-jeong/asreco/internal/schema"
	"github.com/minwoo-jeong/asreco/internal/tabular"
)

func assetRegistry() *tabular.Table {
	t := tabular.New(schema.ColAssetID, schema.ColManufacturer, schema.ColManufacturerModel, schema.ColMakeYear, schema.ColMaterialDesc)
	t.AppendRow(tabular.String("F-001"), tabular.String("두산"), tabular.String("D30S"), tabular.String("2019"), tabular.String("디젤 좌식 3.0톤 3단"))
	t.AppendRow(tabular.String("F-002"), tabular.Null(), tabular.String("EP20"), tabular.String("2021"), tabular.Null())
	return t
}

func TestJoinAssetRegistry(t *testing.T) {
	maint := tabular.New(schema.ColAssetID)
	maint.AppendRow(tabular.String("F-001"))
	maint.AppendRow(tabular.String("F-002"))
	maint.AppendRow(tabular.String("F-999"))

	out, issues := JoinAssetRegistry(maint, assetRegistry())
	require.Empty(t, issues)

	assert.Equal(t, "두산", out.At(0, schema.ColBrand).Text())
	assert.Equal(t, "D30S", out.At(0, schema.ColModel).Text())
	assert.Equal(t, "두산_D30S", out.At(0, schema.ColBrandModel).Text())

	// Registry had no manufacturer: the sentinel fills in, and the composite
	// uses it.
	assert.Equal(t, schema.DefaultBrand, out.At(1, schema.ColBrand).Text())
	assert.Equal(t, schema.DefaultBrand+"_EP20", out.At(1, schema.ColBrandModel).Text())

	// Unmatched asset: sentinel brand, everything else null.
	assert.Equal(t, schema.DefaultBrand, out.At(2, schema.ColBrand).Text())
	assert.True(t, out.At(2, schema.ColModel).IsNull())
	assert.True(t, out.At(2, schema.ColBrandModel).IsNull())
}

func TestJoinAssetRegistrySplitsMaterialDesc(t *testing.T) {
	maint := tabular.New(schema.ColAssetID)
	maint.AppendRow(tabular.String("F-001"))
	maint.AppendRow(tabular.String("F-002"))

	out, _ := JoinAssetRegistry(maint, assetRegistry())

	assert.Equal(t, "디젤", out.At(0, schema.ColFuel).Text())
	assert.Equal(t, "좌식", out.At(0, schema.ColDriveType).Text())
	assert.Equal(t, "3.0톤", out.At(0, schema.ColLoadCapacity).Text())
	assert.Equal(t, "3단", out.At(0, schema.ColMast).Text())

	assert.True(t, out.At(1, schema.ColFuel).IsNull())
}

func TestJoinAssetRegistryPrimarySideWins(t *testing.T) {
	maint := tabular.New(schema.ColAssetID, schema.ColBrand)
	maint.AppendRow(tabular.String("F-001"), tabular.String("현대"))
	maint.AppendRow(tabular.String("F-001"), tabular.Null())

	out, _ := JoinAssetRegistry(maint, assetRegistry())
	assert.Equal(t, "현대", out.At(0, schema.ColBrand).Text())
	assert.Equal(t, "두산", out.At(1, schema.ColBrand).Text(), "registry fills nulls only")
}

func TestJoinAssetRegistryDuplicateKeys(t *testing.T) {
	assets := tabular.New(schema.ColAssetID, schema.ColManufacturer)
	assets.AppendRow(tabular.String("F-001"), tabular.String("첫째"))
	assets.AppendRow(tabular.String("F-001"), tabular.String("둘째"))

	maint := tabular.New(schema.ColAssetID)
	maint.AppendRow(tabular.String("F-001"))

	out, issues := JoinAssetRegistry(maint, assets)
	require.Len(t, issues, 1)
	assert.Equal(t, model.IssueKeyCollision, issues[0].Kind)
	assert.Equal(t, "첫째", out.At(0, schema.ColBrand).Text(), "first occurrence wins")
}

func TestJoinAssetRegistryMissingRegistry(t *testing.T) {
	maint := tabular.New(schema.ColAssetID)
	maint.AppendRow(tabular.String("F-001"))

	out, issues := JoinAssetRegistry(maint, nil)
	require.Len(t, issues, 1)
	assert.Equal(t, model.IssueMissingReference, issues[0].Kind)
	assert.False(t, out.HasColumn(schema.ColBrand))
}

func orgChart() *tabular.Table {
	t := tabular.New(schema.ColEmployeeID, schema.ColAffiliation)
	t.AppendRow(tabular.String("1001"), tabular.String("정비1팀"))
	t.AppendRow(tabular.String("1002"), tabular.String("정비2팀"))
	return t
}

func TestMapAffiliationTechnician(t *testing.T) {
	maint := tabular.New(schema.ColTechnicianID)
	maint.AppendRow(tabular.String("1001"))
	maint.AppendRow(tabular.String("9999"))
	maint.AppendRow(tabular.Null())

	out, issues := MapAffiliation(maint, orgChart())
	require.Empty(t, issues)
	assert.Equal(t, "정비1팀", out.At(0, schema.ColTechAffiliation).Text())
	assert.True(t, out.At(1, schema.ColTechAffiliation).IsNull())
	assert.True(t, out.At(2, schema.ColTechAffiliation).IsNull())
}

func TestMapAffiliationIssuer(t *testing.T) {
	parts := tabular.New(schema.ColIssuerID)
	parts.AppendRow(tabular.String("1002.0")) // numeric export artifact

	out, _ := MapAffiliation(parts, orgChart())
	assert.Equal(t, "정비2팀", out.At(0, schema.ColIssuerAffiliation).Text())
}

func TestMapAffiliationMissingOrg(t *testing.T) {
	maint := tabular.New(schema.ColTechnicianID)
	maint.AppendRow(tabular.String("1001"))

	out, issues := MapAffiliation(maint, nil)
	require.Len(t, issues, 1)
	assert.Equal(t, model.IssueMissingReference, issues[0].Kind)
	assert.False(t, out.HasColumn(schema.ColTechAffiliation))
}
