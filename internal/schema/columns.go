// Package schema fixes the column vocabulary of the AS datasets and decides,
// from a column's name alone, how its cells should be typed.
package schema

// Canonical column names. The upstream spreadsheets are Korean and the whole
// downstream dashboard keys on these exact headers, so they are kept verbatim
// rather than translated.
const (
	// Shared join keys
	ColAssetID = "관리번호" // asset id, the primary join key everywhere

	// Maintenance log
	ColMaintDate      = "정비일자"
	ColTechnicianID   = "정비자번호"
	ColMaintType      = "정비구분" // internal/external classification
	ColWorkType       = "작업유형"
	ColMaintTarget    = "정비대상"
	ColMaintAction    = "정비작업"
	ColSite           = "현장"
	ColOperatingHours = "가동시간"
	ColRepairHours    = "수리시간"

	// Raw classification headers remapped to the trio above on load
	ColRawWorkType = "대분류"
	ColRawTarget   = "중분류"
	ColRawAction   = "소분류"

	// Parts issuance
	ColIssueDate    = "출고일자"
	ColIssuerID     = "출고자"
	ColIssueAmount  = "출고금액"
	ColMaterialName = "자재명"

	// Asset registry
	ColManufacturer      = "제조사명"
	ColManufacturerModel = "제조사모델명"
	ColMakeYear          = "제조년도"
	ColAcquisitionCost   = "취득가"
	ColMaterialDesc      = "자재내역"

	// Org chart
	ColEmployeeID  = "사번"
	ColAffiliation = "소속"

	// Derived columns
	ColBrand             = "브랜드"
	ColModel             = "모델명"
	ColBrandModel        = "브랜드_모델"
	ColFuel              = "연료"
	ColDriveType         = "운전방식"
	ColLoadCapacity      = "적재용량"
	ColMast              = "마스트"
	ColRegion            = "지역"
	ColAddress           = "주소"
	ColSiteName          = "현장명"
	ColPrevMaintDate     = "최근정비일자"
	ColReserviceInterval = "재정비간격"
	ColShortRepeat       = "30일내재정비"
	ColRepairCost        = "수리비"
	ColUsedParts         = "사용부품"
	ColFaultType         = "고장유형"
	ColTechAffiliation   = "정비자소속"
	ColIssuerAffiliation = "출고자소속"

	// Affiliation cost statistics
	ColTotalCost   = "총수리비"
	ColMeanCost    = "평균수리비"
	ColCaseCount   = "건수"
	ColHeadcount   = "소속인원수"
	ColCostPerHead = "인원당수리비"
)

// DefaultBrand is the sentinel used when neither the maintenance log nor the
// asset registry knows the brand.
const DefaultBrand = "기타"

// Maintenance-type canonical vocabulary.
const (
	MaintTypeInternal = "내부"
	MaintTypeExternal = "외부"
)
