// Package secrets implements the first launch step: populating the process
// environment with runtime credentials.
//
// # Sources
//
//   - dotenv: a KEY=VALUE file on disk (the default, read with godotenv).
//   - command: an external program printing KEY=VALUE lines; its exit code
//     propagates when it fails.
//   - s3: a dotenv object in an S3/MinIO bucket.
//   - redis: the fields of a redis hash.
//
// Every source treats missing secrets as an error: a launch must not continue
// with an environment that lacks its credentials.
//
// # Applying
//
// Apply writes the variables with os.Setenv so the migration tool and the
// server inherit them. Existing variables are overridden unless configured
// otherwise. Only variable names and counts are logged, never values.
package secrets
