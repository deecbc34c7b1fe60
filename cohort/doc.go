// Package cohort splits records into pre and post cohorts around a policy
// cutoff and tags them with optional geographic or categorical membership.
package cohort
