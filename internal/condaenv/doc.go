// Package condaenv locates conda environments and computes the process
// environment that `conda activate` and `conda deactivate` would produce,
// without depending on a conda installation being able to run.
package condaenv
