// Package analyze introspects a compiled FMU to find signal exchange
// block instances and KPI declarations.
//
// It compiles the model once, scans the declared constant and fixed
// parameter variables for the marker substrings, and discards the
// transient FMU afterwards. The wrapper generator consumes the result.
//
// Key types:
//   - Classification: overwrite and read block instance path lists
//   - Result: classification, KPI map and non-fatal diagnostics
package analyze
