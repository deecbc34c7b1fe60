// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// Missing values fall back to the defaults the original datathon analyses
// used: the 2025-01-05 congestion-pricing cutoff, the CUNY and Manhattan CBD
// route lists, and the data.ny.gov ACE violations dataset.
package config
