package textutil

// fieldWeights express how much each extracted field contributes to overall
// receipt confidence. Required fields (total, merchant) dominate.
var fieldWeights = map[string]float64{
	"total_amount":   2.0,
	"merchant_name":  2.0,
	"date":           1.0,
	"items":          1.0,
	"tax":            0.5,
	"subtotal":       0.5,
	"payment_method": 0.5,
	"time":           0.25,
	"receipt_number": 0.25,
	"currency":       0.25,
}

const defaultFieldWeight = 0.5

// OverallConfidence aggregates per-field confidences into a single overall
// score via a weighted average. Fields absent from the map count as zero
// confidence against the full required-field weight, so a receipt missing
// its total scores strictly lower than one that has it.
func OverallConfidence(fields map[string]float64) float64 {
	var weighted, totalWeight float64

	for name, weight := range fieldWeights {
		conf := fields[name]
		if conf < 0 {
			conf = 0
		}
		if conf > 1 {
			conf = 1
		}
		weighted += conf * weight
		totalWeight += weight
	}

	// Unknown fields still count, at a modest weight.
	for name, conf := range fields {
		if _, known := fieldWeights[name]; known {
			continue
		}
		if conf < 0 {
			conf = 0
		}
		if conf > 1 {
			conf = 1
		}
		weighted += conf * defaultFieldWeight
		totalWeight += defaultFieldWeight
	}

	if totalWeight == 0 {
		return 0
	}
	return weighted / totalWeight
}
