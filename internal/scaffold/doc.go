// Package scaffold writes the demo-blog integration into a host project:
// sample content, the starter schema, provider components, the application
// entry point, a demo listing page, merged package.json scripts, and the
// admin toggle page. It powers the "tina init" command. Steps run in a
// fixed order, each skipping targets that already exist, so the whole
// sequence is safely re-runnable.
package scaffold
