// Package descriptor declares what each supported device model can
// do: channel counts, sample rates, clock sources, and optional
// capabilities such as phantom power. Parameter sets size themselves
// from a Model, so adding hardware support is a data change, not a
// code change. Models ship built in and can also be loaded from YAML.
package descriptor
