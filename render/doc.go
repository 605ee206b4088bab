// Package render turns fields and diagnostics series into pictures.
//
// Fields are drawn with a blue-white-red colormap (0 is blue, 0.5 white,
// 1 red), row 0 at the top, one scale×scale block per cell. Frames can be
// labeled with the simulation time, saved as PNG or JPEG, or appended to an
// MJPEG AVI animation. Diagnostics series are drawn as line charts with
// go-chart.
//
// Nothing here touches the simulation state; every function reads its
// inputs and writes a new image or file.
package render
