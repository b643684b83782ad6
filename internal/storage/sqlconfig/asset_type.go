package sqlconfig

// AssetType is the kind of holding in a portfolio.
type AssetType string

const (
	AssetTypeStock      AssetType = "stock"
	AssetTypeMutualFund AssetType = "mutual_fund"
	AssetTypeCrypto     AssetType = "crypto"
	AssetTypeOther      AssetType = "other"
)

func (t AssetType) Valid() bool {
	switch t {
	case AssetTypeStock, AssetTypeMutualFund, AssetTypeCrypto, AssetTypeOther:
		return true
	}
	return false
}
