// Package gpu moves tessellator output onto a GPU device.
//
// A [Manager] wraps the HAL device and queue of a host application (any
// value exposing HalDevice() and HalQueue(), as gpucontext providers do) and
// creates vertex and index buffers for patch chunks and fixed-count
// templates under a byte budget.
//
// [PatchInputWGSL] declares the shader-side vertex input matching a patch
// attribute mask, and [ValidatePatchInput] compiles it with naga so the CPU
// writer and the shader cannot disagree on the record layout.
package gpu
