// Package config provides configuration management for the docsite CLI.
//
// This is docsite's own configuration, distinct from the site file it
// validates. The file is config.yaml, searched in the current directory and
// then in the docsite XDG config directory:
//
//	version: 1
//	site_file: docs/.vitepress/site.yaml
//	format: text          # text | json
//	link_check:
//	  enabled: true
//	  anchors: true
//	  ignore:
//	    - /api/*
//
// Every key can be overridden from the environment with the DOCSITE_ prefix,
// e.g. DOCSITE_LINK_CHECK_ENABLED=false.
package config
