// Package socrata is a minimal paged-fetch client for Socrata Open Data API
// datasets. It is an external collaborator to the analysis core: it supplies
// raw tabular rows and knows nothing about normalization or cohorts.
package socrata
