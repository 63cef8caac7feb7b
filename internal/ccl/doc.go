// Package ccl implements connected-component labelling of detector cells.
//
// Responsibilities: the SparseCCL union-find engine (Label), assembly of
// labels into owned per-cluster cell lists (Assemble), and the cluster
// identity attached to every produced cluster.
// Key types: Labeling, ClusterID, Cluster, Container.
//
// Two cells are connected when they differ by at most one channel along
// both axes (8-connectivity). The engine relies on column-major input
// order to prune its search window; see SortPolicy for how unsorted input
// is handled.
//
// No geometry, calibration or feature computation lives here.
package ccl
