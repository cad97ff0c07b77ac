// Package technique models the MITRE ATT&CK techniques huntgen maps threat
// descriptions onto. A Catalog is an immutable, read-only table constructed
// once at startup (from the embedded data set or a YAML file) and is safe for
// unsynchronized concurrent reads. The Mapper scores a description against
// the catalog with deterministic keyword overlap.
package technique
