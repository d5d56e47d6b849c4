// Package backup snapshots site files before docsite overwrites them and
// restores those snapshots on request.
//
// Snapshots are grouped by project. Each one is a timestamped directory
// holding copies of the files and a manifest:
//
//	<cache>/docsite/backups/
//	└── {project}/
//	    └── {id}/
//	        ├── manifest.json
//	        └── {copied files...}
//
// The manifest records each file's original path, permissions and SHA256
// hash. [Manager.Restore] verifies the hashes before copying anything back
// and returns [ErrBackupCorrupted] on a mismatch.
package backup
