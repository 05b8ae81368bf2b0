// Package refresh keeps cached movie records from growing stale by
// re-fetching them once their data age crosses a threshold.
package refresh
