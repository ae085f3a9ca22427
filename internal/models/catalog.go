package models

/**
 * Catalog entry (store_list.yaml)
 * @property {string} name - Display name
 * @property {string} repo - Repository name on the store server
 * @property {string} owner - Repository owner (falls back to store.owner)
 * @property {string} type - Package type: integration/lovelace-card/blueprint
 * @property {string} mode - Preferred download mode: zipball/asset
 * @property {string} asset_name - Release asset to pick in asset mode
 * @property {string} domain - Integration domain when it differs from repo
 */
type CatalogEntry struct {
	Name        string `yaml:"name" json:"name"`
	Repo        string `yaml:"repo" json:"repo"`
	Owner       string `yaml:"owner" json:"owner,omitempty"`
	Type        string `yaml:"type" json:"type"`
	Description string `yaml:"description" json:"description,omitempty"`
	Mode        string `yaml:"mode" json:"mode,omitempty"`
	AssetName   string `yaml:"asset_name" json:"assetName,omitempty"`
	Domain      string `yaml:"domain" json:"domain,omitempty"`
	Source      string `yaml:"source" json:"source,omitempty"`
}

/**
 * Catalog document (store_list.yaml root)
 */
type Catalog struct {
	Packages []CatalogEntry `yaml:"packages" json:"packages"`
}

/**
 * Catalog entry enriched with tracking state for the API/CLI
 */
type CatalogItem struct {
	CatalogEntry
	ID        string `json:"id"`
	Installed bool   `json:"installed"`
	Version   string `json:"version,omitempty"`
}
