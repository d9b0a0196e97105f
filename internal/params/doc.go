// Package params turns an evaluation pair into the exact token list an
// evaluator is invoked with.
//
// Token order is fixed:
//
//	--test-dir <domain path>
//	--models-dir <model path>
//	--train-dir <training descriptor>
//	--test-only
//	--feda
//	--print-instances <instance file>
//	--ignore-<attribute>   (one per non-target attribute)
//
// Building is pure. It reads the provenance registry and constructs path
// strings; it never touches the filesystem.
package params
