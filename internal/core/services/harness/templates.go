package harness

import (
	"text/template"

	"github.com/Mihailob5017/codegames/internal/domain"
)

type programData struct {
	UserCode string
	Args     string // JSON text of the argument array, as a string literal
	Expected string // JSON text of the expected value, as a string literal
}

// Both programs print the verdict on a line of its own, even when user code
// left a partial line on stdout. Non-finite floats are reported as a solution
// error because they have no JSON form.
const javascriptProgram = `{{.UserCode}}

;(function () {
  const __harnessArgs = JSON.parse({{.Args}});
  const __harnessExpected = JSON.parse({{.Expected}});

  const __harnessEqual = function (a, b) {
    if (a === b) return true;
    if (typeof a === 'number' && typeof b === 'number') return Number.isNaN(a) && Number.isNaN(b);
    if (a === null || b === null || typeof a !== 'object' || typeof b !== 'object') return false;
    if (Array.isArray(a) !== Array.isArray(b)) return false;
    if (Array.isArray(a)) {
      if (a.length !== b.length) return false;
      for (let i = 0; i < a.length; i++) {
        if (!__harnessEqual(a[i], b[i])) return false;
      }
      return true;
    }
    const keysA = Object.keys(a);
    const keysB = Object.keys(b);
    if (keysA.length !== keysB.length) return false;
    for (const k of keysA) {
      if (!Object.prototype.hasOwnProperty.call(b, k) || !__harnessEqual(a[k], b[k])) return false;
    }
    return true;
  };

  try {
    let output = solution(...__harnessArgs);
    if (output === undefined) output = null;
    const passed = __harnessEqual(output, __harnessExpected);
    console.log('\n' + JSON.stringify({ success: true, output: output, expected: __harnessExpected, passed: passed }));
  } catch (err) {
    const message = err && err.message ? err.message : String(err);
    console.log('\n' + JSON.stringify({ success: false, error: message, output: null, expected: __harnessExpected, passed: false }));
  }
})();
`

const pythonProgram = `import json as __harness_json

{{.UserCode}}


def __harness_equal(a, b):
    if isinstance(a, bool) or isinstance(b, bool):
        return type(a) is type(b) and a == b
    if isinstance(a, (int, float)) and isinstance(b, (int, float)):
        return a == b
    if isinstance(a, (list, tuple)) and isinstance(b, (list, tuple)):
        return len(a) == len(b) and all(__harness_equal(x, y) for x, y in zip(a, b))
    if isinstance(a, dict) and isinstance(b, dict):
        return a.keys() == b.keys() and all(__harness_equal(a[k], b[k]) for k in a)
    return a == b


__harness_args = __harness_json.loads({{.Args}})
__harness_expected = __harness_json.loads({{.Expected}})

try:
    __harness_output = solution(*__harness_args)
    __harness_verdict = __harness_json.dumps({
        "success": True,
        "output": __harness_output,
        "expected": __harness_expected,
        "passed": __harness_equal(__harness_output, __harness_expected),
    }, allow_nan=False)
    print("\n" + __harness_verdict)
except Exception as __harness_err:
    print("\n" + __harness_json.dumps({
        "success": False,
        "error": str(__harness_err) or type(__harness_err).__name__,
        "output": None,
        "expected": __harness_expected,
        "passed": False,
    }))
`

var programs = map[domain.Language]*template.Template{
	domain.LanguageJavaScript: template.Must(template.New("javascript").Parse(javascriptProgram)),
	domain.LanguagePython:     template.Must(template.New("python").Parse(pythonProgram)),
}
