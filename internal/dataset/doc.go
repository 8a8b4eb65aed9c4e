// Package dataset loads calibrated multi-view capture data: the image
// sequence and the per-view perspective projection matrices.
//
// The image/matrix pairing is positional. Files are loaded in sorted
// name order and matrices in file order, and ValidatePairing must pass
// before the pair is handed to the carving core.
package dataset
