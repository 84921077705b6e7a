package config

// DefaultServerPort is the port the dashboard binds when nothing else is
// configured.
const DefaultServerPort = 8501

// Zillow Research publishes free CSV datasets at
// https://www.zillow.com/research/data/. The default resource is the ZHVI
// for all homes (SFR + condo/co-op), smoothed, seasonally adjusted,
// monthly, by state.
const (
	ZHVIStateURL = "https://files.zillowstatic.com/research/public_csvs/zhvi/" +
		"State_zhvi_uc_sfrcondo_tier_0.33_0.67_sm_sa_month.csv"

	// ZHVIStateFile is the filename the fetcher writes under the data dir.
	ZHVIStateFile = "zhvi_by_state.csv"

	// ZHVIResourceName identifies the default resource in logs and errors.
	ZHVIResourceName = "zhvi_by_state"
)

// CSV schema constants for the wide-format ZHVI file.
const (
	// RegionColumn is the header of the region-identifier column.
	RegionColumn = "RegionName"

	// DateColumnLayout is the layout of the date-labeled columns.
	DateColumnLayout = "2006-01-02"
)
