package pool

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// IneligibleAssetError rejects an asset whose cost exceeds the pooling
// threshold and which is not an existing pool member being re-entered.
type IneligibleAssetError struct {
	Cost      decimal.Decimal
	Threshold decimal.Decimal
}

func (e IneligibleAssetError) Error() string {
	return fmt.Sprintf("asset cost %s exceeds low-value pool threshold %s",
		e.Cost.StringFixed(2), e.Threshold.StringFixed(2))
}

// UnknownAssetError reports an asset ID absent from the workpaper.
type UnknownAssetError struct {
	AssetID string
}

func (e UnknownAssetError) Error() string {
	return fmt.Sprintf("unknown asset %s", e.AssetID)
}

// AlreadyDisposedError rejects a second disposal of the same asset.
type AlreadyDisposedError struct {
	AssetID string
}

func (e AlreadyDisposedError) Error() string {
	return fmt.Sprintf("asset %s is already disposed", e.AssetID)
}

// IncompleteDataError blocks an export attempted before validation passes.
type IncompleteDataError struct {
	Reason string
}

func (e IncompleteDataError) Error() string {
	return "workpaper not ready for export: " + e.Reason
}
