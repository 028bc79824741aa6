// Package setup installs and removes the jnldoc git pre-commit hook.
//
// The hook runs "jnldoc status --check" and blocks the commit when a
// directory's generated documentation no longer matches its journals.
// An existing hook is either refused, replaced (force), or moved to
// pre-commit.backup and run first (chain):
//
//	hooksDir, err := setup.HooksDir(workDir)
//	hookPath := filepath.Join(hooksDir, "pre-commit")
//	chained, err := setup.Install(hookPath, setup.HookOptions{Dir: rel, Chain: true})
//	removed, restored, err := setup.Uninstall(hookPath)
//
// The cmd layer owns flags and output and delegates here for file work.
package setup
