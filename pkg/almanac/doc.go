// Package almanac loads remapping definitions. The text format is the almanac: a "seeds:" line
// followed by "<from>-to-<to> map:" sections of "destination_start source_start length" rows.
// The same definition can be written in TOML or YAML.
package almanac
