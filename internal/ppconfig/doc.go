// Package ppconfig loads predefined macros from a TOML config file so the
// `surge dump`/`check`/`check-dir` commands can seed a ppmacro.Preprocessor without
// requiring every macro to be written inline in the source file.
package ppconfig
