package typescript

// runtimeHelpers holds the fixed per-helper source fragments the emitter
// injects into the prologue for every name present in the helper registry.
// Each entry is self-contained TypeScript source text, not code that runs
// inside the transpiler itself. Array copy/concat/clear need no helpers
// here: the transformer maps them to spread, concat, and length-truncation
// directly.
var runtimeHelpers = map[string]string{
	"rotl8":  "function rotl8(v: number, n: number): number {\n  n &= 7;\n  return ((v << n) | (v >>> (8 - n))) & 0xFF;\n}\n",
	"rotl16": "function rotl16(v: number, n: number): number {\n  n &= 15;\n  return ((v << n) | (v >>> (16 - n))) & 0xFFFF;\n}\n",
	"rotl32": "function rotl32(v: number, n: number): number {\n  n &= 31;\n  return ((v << n) | (v >>> (32 - n))) >>> 0;\n}\n",
	"rotl64": "function rotl64(v: bigint, n: bigint): bigint {\n  n &= 63n;\n  const mask = (1n << 64n) - 1n;\n  return ((v << n) | (v >> (64n - n))) & mask;\n}\n",
	"rotr8":  "function rotr8(v: number, n: number): number {\n  n &= 7;\n  return ((v >>> n) | (v << (8 - n))) & 0xFF;\n}\n",
	"rotr16": "function rotr16(v: number, n: number): number {\n  n &= 15;\n  return ((v >>> n) | (v << (16 - n))) & 0xFFFF;\n}\n",
	"rotr32": "function rotr32(v: number, n: number): number {\n  n &= 31;\n  return ((v >>> n) | (v << (32 - n))) >>> 0;\n}\n",
	"rotr64": "function rotr64(v: bigint, n: bigint): bigint {\n  n &= 63n;\n  const mask = (1n << 64n) - 1n;\n  return ((v >> n) | (v << (64n - n))) & mask;\n}\n",

	"pack16BE": "function pack16BE(bytes: number[]): number {\n  return new DataView(new Uint8Array(bytes).buffer).getUint16(0, false);\n}\n",
	"pack16LE": "function pack16LE(bytes: number[]): number {\n  return new DataView(new Uint8Array(bytes).buffer).getUint16(0, true);\n}\n",
	"pack32BE": "function pack32BE(bytes: number[]): number {\n  return new DataView(new Uint8Array(bytes).buffer).getUint32(0, false);\n}\n",
	"pack32LE": "function pack32LE(bytes: number[]): number {\n  return new DataView(new Uint8Array(bytes).buffer).getUint32(0, true);\n}\n",
	"pack64BE": "function pack64BE(bytes: number[]): bigint {\n  return new DataView(new Uint8Array(bytes).buffer).getBigUint64(0, false);\n}\n",
	"pack64LE": "function pack64LE(bytes: number[]): bigint {\n  return new DataView(new Uint8Array(bytes).buffer).getBigUint64(0, true);\n}\n",

	"unpack16BE": "function unpack16BE(v: number): number[] {\n  const buf = new ArrayBuffer(2);\n  new DataView(buf).setUint16(0, v, false);\n  return Array.from(new Uint8Array(buf));\n}\n",
	"unpack16LE": "function unpack16LE(v: number): number[] {\n  const buf = new ArrayBuffer(2);\n  new DataView(buf).setUint16(0, v, true);\n  return Array.from(new Uint8Array(buf));\n}\n",
	"unpack32BE": "function unpack32BE(v: number): number[] {\n  const buf = new ArrayBuffer(4);\n  new DataView(buf).setUint32(0, v, false);\n  return Array.from(new Uint8Array(buf));\n}\n",
	"unpack32LE": "function unpack32LE(v: number): number[] {\n  const buf = new ArrayBuffer(4);\n  new DataView(buf).setUint32(0, v, true);\n  return Array.from(new Uint8Array(buf));\n}\n",
	"unpack64BE": "function unpack64BE(v: bigint): number[] {\n  const buf = new ArrayBuffer(8);\n  new DataView(buf).setBigUint64(0, v, false);\n  return Array.from(new Uint8Array(buf));\n}\n",
	"unpack64LE": "function unpack64LE(v: bigint): number[] {\n  const buf = new ArrayBuffer(8);\n  new DataView(buf).setBigUint64(0, v, true);\n  return Array.from(new Uint8Array(buf));\n}\n",

	"hexToBytes": "function hexToBytes(hex: string): number[] {\n  const out: number[] = [];\n  for (let i = 0; i < hex.length; i += 2) {\n    out.push(parseInt(hex.substring(i, i + 2), 16));\n  }\n  return out;\n}\n",
	"bytesToHex": "function bytesToHex(bytes: number[]): string {\n  return bytes.map(b => b.toString(16).padStart(2, \"0\")).join(\"\");\n}\n",

	// secureCompare: ORs per-byte XORs with no early exit, so comparison
	// time does not depend on where the inputs first differ.
	"secureCompare": "function secureCompare(a: number[], b: number[]): boolean {\n  if (a.length !== b.length) return false;\n  let diff = 0;\n  for (let i = 0; i < a.length; i++) diff |= a[i] ^ b[i];\n  return diff === 0;\n}\n",

	"xorArrays":   "function xorArrays(a: number[], b: number[]): number[] {\n  return a.map((v, i) => v ^ b[i]);\n}\n",
	"stringToBytes": "function stringToBytes(s: string): number[] {\n  return Array.from(new TextEncoder().encode(s));\n}\n",
	"bytesToString": "function bytesToString(bytes: number[]): string {\n  return new TextDecoder().decode(new Uint8Array(bytes));\n}\n",
}
