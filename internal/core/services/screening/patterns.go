package screening

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Mihailob5017/codegames/internal/domain"
)

type rule struct {
	pattern     *regexp.Regexp
	category    domain.ViolationCategory
	description string
}

func newRule(category domain.ViolationCategory, pattern, description string) rule {
	return rule{
		pattern:     regexp.MustCompile(pattern),
		category:    category,
		description: description,
	}
}

func (r rule) check(source string) *domain.SecurityViolation {
	loc := r.pattern.FindStringIndex(source)
	if loc == nil {
		return nil
	}
	match := strings.TrimSpace(source[loc[0]:loc[1]])
	return &domain.SecurityViolation{
		Category:    r.category,
		Description: fmt.Sprintf("%s (found %q)", r.description, truncateMatch(match)),
	}
}

func truncateMatch(s string) string {
	const max = 40
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

// hugeLiteral matches numeric literals of 10^7 or more: 8+ digits, 1e8 style
// exponents and 10**8 style powers
const hugeLiteral = `(?:\d{8,}|\d+(?:\.\d+)?[eE]\+?(?:[89]|\d{2,})|10\s*\*\*\s*(?:[89]|\d{2,}))`

const pythonBlockedModules = `os|sys|subprocess|socket|shutil|ctypes|importlib|pathlib|multiprocessing|threading|` +
	`signal|pty|pickle|marshal|builtins|io|glob|tempfile|resource|urllib|http|requests|asyncio|select|` +
	`mmap|fcntl|code|codeop|inspect|gc|posix|pwd|platform|sysconfig|webbrowser|ftplib|smtplib|telnetlib`

var injectionRules = map[domain.Language][]rule{
	domain.LanguageJavaScript: {
		newRule(domain.ViolationInjection, `\brequire\s*\(`, "loading modules with require is not allowed"),
		newRule(domain.ViolationInjection, `(?m)^\s*import\b|\bimport\s*\(`, "module imports are not allowed"),
		newRule(domain.ViolationInjection, `\bprocess\s*(?:\.|\[)`, "access to the process object is not allowed"),
		newRule(domain.ViolationInjection, `\b(?:child_process|worker_threads|cluster)\b`, "spawning processes or threads is not allowed"),
		newRule(domain.ViolationInjection, `\bfs\s*\.`, "filesystem access is not allowed"),
		newRule(domain.ViolationInjection, `\b(?:fetch|XMLHttpRequest|WebSocket|EventSource)\s*\(|\bnew\s+(?:XMLHttpRequest|WebSocket|EventSource)\b`, "network access is not allowed"),
		newRule(domain.ViolationInjection, `\beval\s*\(`, "dynamic code evaluation is not allowed"),
		newRule(domain.ViolationInjection, `\bFunction\s*\(`, "building functions from strings is not allowed"),
		newRule(domain.ViolationInjection, `\bconstructor\s*\.\s*constructor\b|\[\s*['"`+"`"+`]constructor['"`+"`"+`]\s*\]|__proto__`, "prototype chain access is not allowed"),
		newRule(domain.ViolationInjection, `\b(?:globalThis|global)\s*(?:\.|\[)`, "access to the global object is not allowed"),
		newRule(domain.ViolationInjection, `\bmodule\s*\.\s*(?:constructor|require)\b|\b__(?:dirname|filename)\b`, "access to module internals is not allowed"),
		newRule(domain.ViolationInjection, `\bWebAssembly\b`, "WebAssembly is not allowed"),
	},
	domain.LanguagePython: {
		newRule(domain.ViolationInjection, `(?m)^\s*import\s+(?:[\w.]+(?:\s+as\s+\w+)?\s*,\s*)*(?:`+pythonBlockedModules+`)\b`, "importing this module is not allowed"),
		newRule(domain.ViolationInjection, `(?m)^\s*from\s+(?:`+pythonBlockedModules+`)\b`, "importing this module is not allowed"),
		newRule(domain.ViolationInjection, `\b__import__\s*\(`, "dynamic imports are not allowed"),
		newRule(domain.ViolationInjection, `(?:^|[^.\w])(?:eval|exec|compile)\s*\(`, "dynamic code evaluation is not allowed"),
		newRule(domain.ViolationInjection, `(?:^|[^.\w])open\s*\(`, "file access is not allowed"),
		newRule(domain.ViolationInjection, `__(?:builtins|subclasses|globals|code|class|bases|mro|loader|spec)__`, "access to interpreter internals is not allowed"),
		newRule(domain.ViolationInjection, `(?:^|[^.\w])(?:globals|locals|getattr|setattr|delattr)\s*\(`, "reflection builtins are not allowed"),
	},
}

var dosRules = map[domain.Language][]rule{
	domain.LanguageJavaScript: {
		newRule(domain.ViolationDoS, `\bwhile\s*\(\s*(?:true|1|!0|!!1)\s*\)`, "unbounded while loop"),
		newRule(domain.ViolationDoS, `\bfor\s*\(\s*;\s*;\s*\)`, "unbounded for loop"),
		newRule(domain.ViolationDoS, `\b(?:setInterval|setTimeout|setImmediate|queueMicrotask)\s*\(`, "timers and scheduled callbacks are not allowed"),
		newRule(domain.ViolationDoS, `\bfor\s*\([^;]*;[^;]*?[<>]=?\s*`+hugeLiteral, "loop bound is too large"),
		newRule(domain.ViolationDoS, `\bwhile\s*\([^)]*?[<>]=?\s*`+hugeLiteral, "loop bound is too large"),
		newRule(domain.ViolationDoS, `\bnew\s+Array\s*\(\s*`+hugeLiteral, "allocation is too large"),
	},
	domain.LanguagePython: {
		newRule(domain.ViolationDoS, `\bwhile\s*\(?\s*(?:True|1|not\s+False|not\s+0)\s*\)?\s*:`, "unbounded while loop"),
		newRule(domain.ViolationDoS, `\bitertools\s*\.\s*(?:count|cycle|repeat)\s*\(`, "unbounded iterator"),
		newRule(domain.ViolationDoS, `\brange\s*\([^)]*?`+hugeLiteral, "range bound is too large"),
		newRule(domain.ViolationDoS, `\bwhile\s+[^:\n]*?[<>]=?\s*`+hugeLiteral, "loop bound is too large"),
		newRule(domain.ViolationDoS, `(?:^|[^.\w])sleep\s*\(|\btime\s*\.\s*sleep\s*\(`, "sleeping is not allowed"),
		newRule(domain.ViolationDoS, `\[[^\]]*\]\s*\*\s*`+hugeLiteral, "allocation is too large"),
	},
}

var maliciousRules = []rule{
	newRule(domain.ViolationMalicious, `(?i)\b(?:password|passwd|secret_?key|api_?key|access_?token|auth_?token|private_?key|credentials?|aws_(?:access|secret)\w*)\b`, "credential-like identifiers are not allowed"),
	newRule(domain.ViolationMalicious, `(?i)\b(?:sudo|chmod|chown|chroot|setuid|setgid|seteuid|useradd|usermod|mkfs|iptables)\b|\brm\s+-rf\b|\bnc\s+-e\b`, "privilege escalation commands are not allowed"),
	newRule(domain.ViolationMalicious, `(?i)/etc/(?:passwd|shadow|sudoers|hosts|group)\b|/proc/|/sys/|/root\b|/dev/(?:tcp|udp|mem|kmem|sd)|~/\.ssh|\.ssh/|\.aws/|/var/run/docker\.sock|\\windows\\system32`, "access to sensitive paths is not allowed"),
	newRule(domain.ViolationMalicious, `(?i)\b(?:keylogger|reverse_?shell|xmrig|cryptominer|botnet)\b`, "malicious tooling keywords are not allowed"),
}

var entryPoints = map[domain.Language]*regexp.Regexp{
	domain.LanguageJavaScript: regexp.MustCompile(
		`\bfunction\s*\*?\s*solution\s*\(|\b(?:const|let|var)\s+solution\s*=\s*(?:async\s+)?(?:function\b|\(|[A-Za-z_$][\w$]*\s*=>)`,
	),
	domain.LanguagePython: regexp.MustCompile(`(?m)^def\s+solution\s*\(|^solution\s*=\s*lambda\b`),
}
