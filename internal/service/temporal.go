package service

import (
	"time"

	"github.com/jinzhu/now"

	"github.com/minwoo-jeong/asreco/internal/model"
	"github.com/minwoo-jeong/asreco/internal/schema"
	"github.com/minwoo-jeong/asreco/internal/tabular"
)

// dayDiff returns whole days between two timestamps after truncating both to
// their day, so a 23:00 maintenance and an 01:00 issuance one night apart
// still count as one day.
func dayDiff(a, b time.Time) int {
	da := now.New(a).BeginningOfDay()
	db := now.New(b).BeginningOfDay()
	return int(da.Sub(db).Hours() / 24)
}

// LinkPreviousMaintenance sorts by (관리번호, 정비일자) ascending with null
// dates last, then gives every row the date of the prior row for the same
// asset as 최근정비일자. The first record of each asset gets null, which is
// the expected case, not an error.
func LinkPreviousMaintenance(t *tabular.Table) (*tabular.Table, []model.Issue) {
	if t == nil {
		return nil, nil
	}
	if !t.HasColumns(schema.ColAssetID, schema.ColMaintDate) {
		return t, []model.Issue{{
			Stage:   stageTemporal,
			Kind:    model.IssueMissingColumn,
			Message: schema.ColAssetID + "/" + schema.ColMaintDate + " required; previous-date linking skipped",
		}}
	}

	out := t.Clone()
	out.SortStable(func(a, b tabular.Row) bool {
		ka := canonicalID(a.At(schema.ColAssetID).Text())
		kb := canonicalID(b.At(schema.ColAssetID).Text())
		if ka != kb {
			return ka < kb
		}
		da, aOK := a.At(schema.ColMaintDate).Date()
		db, bOK := b.At(schema.ColMaintDate).Date()
		if aOK != bOK {
			return aOK // null dates sort last within the asset
		}
		return aOK && da.Before(db)
	})

	out.AddColumn(schema.ColPrevMaintDate, tabular.Null())
	prevAsset := ""
	prevDate := tabular.Null()
	for i := 0; i < out.NumRows(); i++ {
		asset := canonicalID(out.At(i, schema.ColAssetID).Text())
		if asset == prevAsset {
			out.Set(i, schema.ColPrevMaintDate, prevDate)
		} else {
			out.Set(i, schema.ColPrevMaintDate, tabular.Null())
		}
		prevAsset = asset
		prevDate = out.At(i, schema.ColMaintDate)
		if _, ok := prevDate.Date(); !ok {
			prevDate = tabular.Null()
		}
	}
	return out, nil
}

// ComputeReserviceInterval derives 재정비간격 (days between 최근정비일자 and
// 정비일자) and the 30일내재정비 flag. A same-day duplicate has interval 0
// and is intentionally NOT flagged; only 0 < interval <= shortRepeatDays
// counts as a short-interval repeat.
func ComputeReserviceInterval(t *tabular.Table, shortRepeatDays int) (*tabular.Table, []model.Issue) {
	if t == nil {
		return nil, nil
	}
	if !t.HasColumns(schema.ColMaintDate, schema.ColPrevMaintDate) {
		return t, []model.Issue{{
			Stage:   stageTemporal,
			Kind:    model.IssueMissingColumn,
			Message: schema.ColPrevMaintDate + " not derived; re-service interval skipped",
		}}
	}

	out := t.Clone()
	out.AddColumn(schema.ColReserviceInterval, tabular.Null())
	out.AddColumn(schema.ColShortRepeat, tabular.Bool(false))
	for i := 0; i < out.NumRows(); i++ {
		cur, curOK := out.At(i, schema.ColMaintDate).Date()
		prev, prevOK := out.At(i, schema.ColPrevMaintDate).Date()
		if !curOK || !prevOK {
			continue
		}
		interval := dayDiff(cur, prev)
		out.Set(i, schema.ColReserviceInterval, tabular.NumberFromInt(int64(interval)))
		out.Set(i, schema.ColShortRepeat, tabular.Bool(interval > 0 && interval <= shortRepeatDays))
	}
	return out, nil
}
