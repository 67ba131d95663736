// Package config loads the hocon-setting configuration: embedded defaults,
// then a main TOML file, then drop-in files in lexicographic order, each
// layer overriding only the keys it sets.
package config
