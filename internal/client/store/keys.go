// Package store provides the typed persisted stores for locally-owned
// client state, layered over the kv repository. Key layout:
//
//	override::<id>            one Override record per item id
//	tombstones                ordered JSON array of deleted item ids
//	featured-confirmed::<id>  "true" once the feature-on call was confirmed
//	cache::<list-name>        last successfully reconciled snapshot per list
package store

const (
	overrideKeyPrefix = "override::"
	tombstonesKey     = "tombstones"
	featuredKeyPrefix = "featured-confirmed::"
	cacheKeyPrefix    = "cache::"
)
