package ruby

// runtimeHelpers holds the fixed per-helper source fragments the emitter
// injects into the prologue for every name present in the helper registry.
// Each entry is self-contained Ruby source text, not code that runs inside
// the transpiler itself. Defined as top-level `def`s so every class body
// can call them unqualified.
var runtimeHelpers = map[string]string{
	"rotl8":  "def rotl8(v, n)\n  n &= 7\n  ((v << n) | (v >> (8 - n))) & 0xFF\nend\n",
	"rotl16": "def rotl16(v, n)\n  n &= 15\n  ((v << n) | (v >> (16 - n))) & 0xFFFF\nend\n",
	"rotl32": "def rotl32(v, n)\n  n &= 31\n  ((v << n) | (v >> (32 - n))) & 0xFFFFFFFF\nend\n",
	"rotl64": "def rotl64(v, n)\n  n &= 63\n  ((v << n) | (v >> (64 - n))) & 0xFFFFFFFFFFFFFFFF\nend\n",
	"rotr8":  "def rotr8(v, n)\n  n &= 7\n  ((v >> n) | (v << (8 - n))) & 0xFF\nend\n",
	"rotr16": "def rotr16(v, n)\n  n &= 15\n  ((v >> n) | (v << (16 - n))) & 0xFFFF\nend\n",
	"rotr32": "def rotr32(v, n)\n  n &= 31\n  ((v >> n) | (v << (32 - n))) & 0xFFFFFFFF\nend\n",
	"rotr64": "def rotr64(v, n)\n  n &= 63\n  ((v >> n) | (v << (64 - n))) & 0xFFFFFFFFFFFFFFFF\nend\n",

	"pack16_be": "def pack16_be(bytes)\n  bytes.pack('C*').unpack1('n')\nend\n",
	"pack16_le": "def pack16_le(bytes)\n  bytes.pack('C*').unpack1('v')\nend\n",
	"pack32_be": "def pack32_be(bytes)\n  bytes.pack('C*').unpack1('N')\nend\n",
	"pack32_le": "def pack32_le(bytes)\n  bytes.pack('C*').unpack1('V')\nend\n",
	"pack64_be": "def pack64_be(bytes)\n  bytes.pack('C*').unpack1('Q>')\nend\n",
	"pack64_le": "def pack64_le(bytes)\n  bytes.pack('C*').unpack1('Q<')\nend\n",

	"unpack16_be": "def unpack16_be(v)\n  [v].pack('n').unpack('C*')\nend\n",
	"unpack16_le": "def unpack16_le(v)\n  [v].pack('v').unpack('C*')\nend\n",
	"unpack32_be": "def unpack32_be(v)\n  [v].pack('N').unpack('C*')\nend\n",
	"unpack32_le": "def unpack32_le(v)\n  [v].pack('V').unpack('C*')\nend\n",
	"unpack64_be": "def unpack64_be(v)\n  [v].pack('Q>').unpack('C*')\nend\n",
	"unpack64_le": "def unpack64_le(v)\n  [v].pack('Q<').unpack('C*')\nend\n",

	"hex_to_bytes": "def hex_to_bytes(hex)\n  [hex].pack('H*').bytes\nend\n",
	"bytes_to_hex": "def bytes_to_hex(bytes)\n  bytes.pack('C*').unpack1('H*')\nend\n",

	// secure_compare: ORs per-byte XORs with no early exit, so comparison
	// time does not depend on where the inputs first differ.
	"secure_compare": "def secure_compare(a, b)\n  return false if a.length != b.length\n  diff = 0\n  a.each_index { |i| diff |= (a[i] ^ b[i]) }\n  diff == 0\nend\n",

	"array_xor":     "def array_xor(a, b)\n  a.zip(b).map { |x, y| x ^ y }\nend\n",
	"copy_array":    "def copy_array(a)\n  a.dup\nend\n",
	"concat_arrays":  "def concat_arrays(a, b)\n  a + b\nend\n",
	"clear_array":   "def clear_array(a)\n  a.fill(0)\nend\n",

	"string_trim":            "def string_trim(s)\n  s.strip\nend\n",
	"string_to_lower":        "def string_to_lower(s)\n  s.downcase\nend\n",
	"string_to_upper":        "def string_to_upper(s)\n  s.upcase\nend\n",
	"string_repeat":          "def string_repeat(s, n)\n  s * n\nend\n",
	"string_replace":         "def string_replace(s, pat, repl)\n  s.gsub(pat, repl)\nend\n",
	"string_from_char_codes": "def string_from_char_codes(codes)\n  codes.pack('U*')\nend\n",
}
