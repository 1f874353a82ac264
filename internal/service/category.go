package service

import (
	"github.com/minwoo-jeong/asreco/internal/model"
	"github.com/minwoo-jeong/asreco/internal/schema"
	"github.com/minwoo-jeong/asreco/internal/tabular"
)

// ComposeFaultType derives 고장유형 by joining 작업유형, 정비대상 and
// 정비작업 with underscores, but only for rows where all three are present.
// Any null in the trio leaves the composite null; there are no partial
// labels. A row whose three fields all read "nan" (a string cast of nulls
// further upstream) would compose into "nan_nan_nan", which is scrubbed back
// to null here.
func ComposeFaultType(t *tabular.Table) (*tabular.Table, []model.Issue) {
	if t == nil {
		return nil, nil
	}
	if !t.HasColumns(schema.ColWorkType, schema.ColMaintTarget, schema.ColMaintAction) {
		return t, []model.Issue{{
			Stage:   stageCategory,
			Kind:    model.IssueMissingColumn,
			Message: "classification trio incomplete; fault-type composition skipped",
		}}
	}

	out := t.Clone()
	out.AddColumn(schema.ColFaultType, tabular.Null())
	for i := 0; i < out.NumRows(); i++ {
		work := out.At(i, schema.ColWorkType)
		target := out.At(i, schema.ColMaintTarget)
		action := out.At(i, schema.ColMaintAction)
		if work.IsNull() || target.IsNull() || action.IsNull() {
			continue
		}
		label := work.Text() + "_" + target.Text() + "_" + action.Text()
		if label == "nan_nan_nan" {
			continue
		}
		out.Set(i, schema.ColFaultType, tabular.String(label))
	}
	return out, nil
}
