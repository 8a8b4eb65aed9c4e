// Package silhouette derives binary foreground masks from calibrated
// object photographs.
//
// Responsibilities: border cropping, Gaussian smoothing, color-space
// conversion, channel extraction, Otsu thresholding, bitwise
// segmentation, and conversion of OpenCV mask mats into the plain
// carve.Mask values the carving core consumes.
//
// No carving logic lives here; this package only prepares inputs.
package silhouette
