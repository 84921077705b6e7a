// Package fetch downloads raw source datasets from remote endpoints into
// the local data directory. Downloads are not retried; a failed resource
// surfaces a *FetchError and does not prevent the remaining resources from
// being fetched.
package fetch
