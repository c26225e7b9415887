package source

import (
	"path"
	"strings"
)

// nodeBuiltins are the module names Node.js resolves internally. Imports of
// these are neither project files nor manifest dependencies.
var nodeBuiltins = map[string]struct{}{
	"assert": {}, "async_hooks": {}, "buffer": {}, "child_process": {},
	"cluster": {}, "console": {}, "constants": {}, "crypto": {}, "dgram": {},
	"diagnostics_channel": {}, "dns": {}, "domain": {}, "events": {},
	"fs": {}, "http": {}, "http2": {}, "https": {}, "inspector": {},
	"module": {}, "net": {}, "os": {}, "path": {}, "perf_hooks": {},
	"process": {}, "punycode": {}, "querystring": {}, "readline": {},
	"repl": {}, "stream": {}, "string_decoder": {}, "timers": {}, "tls": {},
	"trace_events": {}, "tty": {}, "url": {}, "util": {}, "v8": {}, "vm": {},
	"wasi": {}, "worker_threads": {}, "zlib": {},
}

// IsBuiltin reports whether specifier names a Node.js built-in module.
func IsBuiltin(specifier string) bool {
	if strings.HasPrefix(specifier, "node:") {
		return true
	}
	base := specifier
	if i := strings.Index(base, "/"); i >= 0 {
		base = base[:i]
	}
	_, ok := nodeBuiltins[base]
	return ok
}

// IsRelative reports whether specifier addresses a project file rather than
// a package.
func IsRelative(specifier string) bool {
	return strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../") || specifier == "." || specifier == ".."
}

// PackageName reduces a bare specifier to its manifest package name:
// "@scope/pkg/sub" -> "@scope/pkg", "pkg/sub" -> "pkg".
func PackageName(specifier string) string {
	parts := strings.Split(specifier, "/")
	if strings.HasPrefix(specifier, "@") && len(parts) >= 2 {
		return parts[0] + "/" + parts[1]
	}
	return parts[0]
}

// sourceExtensions are probed in order when a specifier omits its extension.
var sourceExtensions = []string{".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs"}

// resolveCandidates lists the project-relative paths a relative specifier
// may address, in probe order: the literal path, extension-swapped TS
// variants (compiled output imports ".js" for a ".ts" source), appended
// extensions, and directory index files.
func resolveCandidates(fromFile, specifier string) []string {
	base := path.Join(path.Dir(fromFile), specifier)
	candidates := []string{base}

	switch path.Ext(base) {
	case ".js":
		stem := strings.TrimSuffix(base, ".js")
		candidates = append(candidates, stem+".ts", stem+".tsx")
	case ".jsx":
		stem := strings.TrimSuffix(base, ".jsx")
		candidates = append(candidates, stem+".tsx", stem+".ts")
	case ".mjs":
		candidates = append(candidates, strings.TrimSuffix(base, ".mjs")+".mts")
	case ".cjs":
		candidates = append(candidates, strings.TrimSuffix(base, ".cjs")+".cts")
	}

	for _, ext := range sourceExtensions {
		candidates = append(candidates, base+ext)
	}
	for _, ext := range sourceExtensions {
		candidates = append(candidates, path.Join(base, "index"+ext))
	}
	return candidates
}
