package batch

import (
	"fmt"

	orifice "Eletta/internal/calc/orifice"
)

type SizingBatchInput struct {
	Items []orifice.Input `json:"items"`
}

type SizingBatchResult struct {
	Results []orifice.Result `json:"results"`
}

// CalculateSizing runs the orifice solver over every point in the batch.
// A failing point aborts the batch; partial results are not returned.
func CalculateSizing(in SizingBatchInput) (SizingBatchResult, error) {
	if len(in.Items) == 0 {
		return SizingBatchResult{}, fmt.Errorf("no items")
	}
	out := SizingBatchResult{Results: make([]orifice.Result, 0, len(in.Items))}
	for _, item := range in.Items {
		res, err := orifice.Size(item)
		if err != nil {
			return SizingBatchResult{}, err
		}
		out.Results = append(out.Results, res)
	}
	return out, nil
}
