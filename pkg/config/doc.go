// Package config holds the export settings: the filter rules, the text
// replacements, the excluded projects and the run toggles.
//
// Settings come from the built-in defaults or from one configuration file.
// TOML and YAML files use the layout of embedded/defaults.toml; XML files use
// the settings document of the earlier Windows tool:
//
//	<Settings ComputeHash="true" RemoveTfsBinding="true" ...>
//	  <Filters>
//	    <Filter FilterType="Exclude" ApplyToFileName="true" ...>*.suo</Filter>
//	  </Filters>
//	  <Replace text="Acme" by="Contoso" />
//	</Settings>
//
// A file replaces the defaults as a whole. Toggles can then be overridden
// from the environment, e.g. SRCEXPORT_COMPUTE_HASH=false.
package config
