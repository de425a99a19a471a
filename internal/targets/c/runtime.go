package c

// runtimeHelpers holds the fixed per-helper source fragments the emitter
// injects into the prologue for every name present in the helper registry.
// Each entry is self-contained C source text, not code that runs inside
// the transpiler itself.
var runtimeHelpers = map[string]string{
	"rotl8":  "static inline uint8_t rotl8(uint8_t v, unsigned n) { n &= 7; return (uint8_t)((v << n) | (v >> ((8 - n) & 7))); }\n",
	"rotl16": "static inline uint16_t rotl16(uint16_t v, unsigned n) { n &= 15; return (uint16_t)((v << n) | (v >> ((16 - n) & 15))); }\n",
	"rotl32": "static inline uint32_t rotl32(uint32_t v, unsigned n) { n &= 31; return (v << n) | (v >> ((32 - n) & 31)); }\n",
	"rotl64": "static inline uint64_t rotl64(uint64_t v, unsigned n) { n &= 63; return (v << n) | (v >> ((64 - n) & 63)); }\n",
	"rotr8":  "static inline uint8_t rotr8(uint8_t v, unsigned n) { n &= 7; return (uint8_t)((v >> n) | (v << ((8 - n) & 7))); }\n",
	"rotr16": "static inline uint16_t rotr16(uint16_t v, unsigned n) { n &= 15; return (uint16_t)((v >> n) | (v << ((16 - n) & 15))); }\n",
	"rotr32": "static inline uint32_t rotr32(uint32_t v, unsigned n) { n &= 31; return (v >> n) | (v << ((32 - n) & 31)); }\n",
	"rotr64": "static inline uint64_t rotr64(uint64_t v, unsigned n) { n &= 63; return (v >> n) | (v << ((64 - n) & 63)); }\n",

	"pack16_be": "static inline uint16_t pack16_be(uint8_t b0, uint8_t b1) { return (uint16_t)((b0 << 8) | b1); }\n",
	"pack16_le": "static inline uint16_t pack16_le(uint8_t b0, uint8_t b1) { return (uint16_t)((b1 << 8) | b0); }\n",
	"pack32_be": "static inline uint32_t pack32_be(uint8_t b0, uint8_t b1, uint8_t b2, uint8_t b3) { return ((uint32_t)b0 << 24) | ((uint32_t)b1 << 16) | ((uint32_t)b2 << 8) | b3; }\n",
	"pack32_le": "static inline uint32_t pack32_le(uint8_t b0, uint8_t b1, uint8_t b2, uint8_t b3) { return ((uint32_t)b3 << 24) | ((uint32_t)b2 << 16) | ((uint32_t)b1 << 8) | b0; }\n",
	"pack64_be": "static inline uint64_t pack64_be(const uint8_t* b) { uint64_t v = 0; for (int i = 0; i < 8; i++) { v = (v << 8) | b[i]; } return v; }\n",
	"pack64_le": "static inline uint64_t pack64_le(const uint8_t* b) { uint64_t v = 0; for (int i = 7; i >= 0; i--) { v = (v << 8) | b[i]; } return v; }\n",

	"unpack16_be": "static inline void unpack16_be(uint16_t v, uint8_t* out) { out[0] = (uint8_t)(v >> 8); out[1] = (uint8_t)v; }\n",
	"unpack16_le": "static inline void unpack16_le(uint16_t v, uint8_t* out) { out[0] = (uint8_t)v; out[1] = (uint8_t)(v >> 8); }\n",
	"unpack32_be": "static inline void unpack32_be(uint32_t v, uint8_t* out) { out[0]=(uint8_t)(v>>24); out[1]=(uint8_t)(v>>16); out[2]=(uint8_t)(v>>8); out[3]=(uint8_t)v; }\n",
	"unpack32_le": "static inline void unpack32_le(uint32_t v, uint8_t* out) { out[0]=(uint8_t)v; out[1]=(uint8_t)(v>>8); out[2]=(uint8_t)(v>>16); out[3]=(uint8_t)(v>>24); }\n",
	"unpack64_be": "static inline void unpack64_be(uint64_t v, uint8_t* out) { for (int i = 0; i < 8; i++) { out[i] = (uint8_t)(v >> (56 - 8*i)); } }\n",
	"unpack64_le": "static inline void unpack64_le(uint64_t v, uint8_t* out) { for (int i = 0; i < 8; i++) { out[i] = (uint8_t)(v >> (8*i)); } }\n",

	"hex_to_bytes": `static uint8_t* hex_to_bytes(const char* hex) {
    size_t n = strlen(hex) / 2;
    uint8_t* out = malloc(n);
    for (size_t i = 0; i < n; i++) {
        sscanf(hex + 2*i, "%2hhx", &out[i]);
    }
    return out;
}
`,
	"bytes_to_hex": `static char* bytes_to_hex(const uint8_t* bytes, size_t len) {
    char* out = malloc(len * 2 + 1);
    for (size_t i = 0; i < len; i++) {
        snprintf(out + 2*i, 3, "%02x", bytes[i]);
    }
    return out;
}
`,
	// secure_compare: ORs per-byte XORs with no early exit, so comparison
	// time does not depend on where the inputs first differ. The transformer
	// always emits the (a, b, len) three-argument form
	// and lets the caller pass a fixed 16-byte tag length when comparing
	// authentication tags, rather than maintaining two C symbols.
	"secure_compare": `static bool secure_compare(const uint8_t* a, const uint8_t* b, size_t len) {
    uint8_t diff = 0;
    for (size_t i = 0; i < len; i++) {
        diff |= a[i] ^ b[i];
    }
    return diff == 0;
}
`,
	"array_xor": `static uint8_t* array_xor(const uint8_t* a, const uint8_t* b, size_t len) {
    uint8_t* out = malloc(len);
    for (size_t i = 0; i < len; i++) {
        out[i] = a[i] ^ b[i];
    }
    return out;
}
`,
	"copy_array": `static uint8_t* copy_array(const uint8_t* src, size_t len) {
    uint8_t* out = malloc(len);
    memcpy(out, src, len);
    return out;
}
`,
	"concat_arrays": `static uint8_t* concat_arrays(const uint8_t* a, size_t alen, const uint8_t* b, size_t blen) {
    uint8_t* out = malloc(alen + blen);
    memcpy(out, a, alen);
    memcpy(out + alen, b, blen);
    return out;
}
`,
	"clear_array": "static inline void clear_array(uint8_t* a, size_t len) { memset(a, 0, len); }\n",

	"array_slice":    "static uint8_t* array_slice(const uint8_t* a, size_t start, size_t end) { size_t n = end - start; uint8_t* out = malloc(n); memcpy(out, a + start, n); return out; }\n",
	"array_fill":     "static inline void array_fill(uint8_t* a, size_t len, uint8_t v) { memset(a, v, len); }\n",
	"array_reverse":  "static inline void array_reverse(uint8_t* a, size_t len) { for (size_t i = 0; i < len/2; i++) { uint8_t t = a[i]; a[i] = a[len-1-i]; a[len-1-i] = t; } }\n",
	"array_index_of": "static long array_index_of(const uint8_t* a, size_t len, uint8_t v) { for (size_t i = 0; i < len; i++) { if (a[i] == v) return (long)i; } return -1; }\n",

	"string_trim": `static char* string_trim(const char* s) {
    while (*s == ' ' || *s == '\t' || *s == '\n' || *s == '\r') s++;
    size_t len = strlen(s);
    while (len > 0 && (s[len-1] == ' ' || s[len-1] == '\t' || s[len-1] == '\n' || s[len-1] == '\r')) len--;
    char* out = malloc(len + 1);
    memcpy(out, s, len);
    out[len] = '\0';
    return out;
}
`,
	"string_to_lower": `static char* string_to_lower(const char* s) {
    size_t len = strlen(s);
    char* out = malloc(len + 1);
    for (size_t i = 0; i < len; i++) {
        out[i] = (s[i] >= 'A' && s[i] <= 'Z') ? s[i] + 32 : s[i];
    }
    out[len] = '\0';
    return out;
}
`,
	"string_to_upper": `static char* string_to_upper(const char* s) {
    size_t len = strlen(s);
    char* out = malloc(len + 1);
    for (size_t i = 0; i < len; i++) {
        out[i] = (s[i] >= 'a' && s[i] <= 'z') ? s[i] - 32 : s[i];
    }
    out[len] = '\0';
    return out;
}
`,
	"string_repeat": `static char* string_repeat(const char* s, int n) {
    size_t len = strlen(s);
    char* out = malloc(len * (size_t)n + 1);
    for (int i = 0; i < n; i++) {
        memcpy(out + (size_t)i * len, s, len);
    }
    out[len * (size_t)n] = '\0';
    return out;
}
`,
	"string_replace": `static char* string_replace(const char* s, const char* pat, const char* repl) {
    size_t plen = strlen(pat);
    size_t rlen = strlen(repl);
    if (plen == 0) {
        char* dup = malloc(strlen(s) + 1);
        strcpy(dup, s);
        return dup;
    }
    size_t count = 0;
    for (const char* p = s; (p = strstr(p, pat)) != NULL; p += plen) count++;
    char* out = malloc(strlen(s) + count * rlen + 1);
    char* w = out;
    const char* p = s;
    const char* hit;
    while ((hit = strstr(p, pat)) != NULL) {
        memcpy(w, p, (size_t)(hit - p));
        w += hit - p;
        memcpy(w, repl, rlen);
        w += rlen;
        p = hit + plen;
    }
    strcpy(w, p);
    return out;
}
`,
	"string_substring": `static char* string_substring(const char* s, size_t start, size_t end) {
    size_t n = end - start;
    char* out = malloc(n + 1);
    memcpy(out, s + start, n);
    out[n] = '\0';
    return out;
}
`,
	"string_index_of": `static long string_index_of(const char* s, const char* sub) {
    const char* p = strstr(s, sub);
    return p ? (long)(p - s) : -1;
}
`,
	"string_starts_with": "static inline bool string_starts_with(const char* s, const char* sub) { return strncmp(s, sub, strlen(sub)) == 0; }\n",
	"string_ends_with": `static bool string_ends_with(const char* s, const char* sub) {
    size_t slen = strlen(s);
    size_t sublen = strlen(sub);
    return sublen <= slen && memcmp(s + slen - sublen, sub, sublen) == 0;
}
`,
	"string_concat": `static char* string_concat(const char* a, const char* b) {
    size_t alen = strlen(a);
    size_t blen = strlen(b);
    char* out = malloc(alen + blen + 1);
    memcpy(out, a, alen);
    memcpy(out + alen, b, blen + 1);
    return out;
}
`,
	"string_from_char_codes": `static char* string_from_char_codes(const int* codes, size_t n) {
    char* out = malloc(n + 1);
    for (size_t i = 0; i < n; i++) {
        out[i] = (char)codes[i];
    }
    out[n] = '\0';
    return out;
}
`,
	"snprintf_concat": `static char* snprintf_concat(const char* fmt, ...) {
    va_list ap;
    va_start(ap, fmt);
    va_list ap2;
    va_copy(ap2, ap);
    int n = vsnprintf(NULL, 0, fmt, ap);
    va_end(ap);
    char* out = malloc((size_t)n + 1);
    vsnprintf(out, (size_t)n + 1, fmt, ap2);
    va_end(ap2);
    return out;
}
`,

	// Framework-type stubs for the algorithm-registration records the
	// transpiled source references.
	"link_item_t": `typedef struct { const char* text; const char* uri; } link_item_t;
`,
	"vulnerability_t": `typedef struct { const char* type; const char* text; } vulnerability_t;
`,
	"test_case_t": `typedef struct { const uint8_t* input; size_t input_len; const uint8_t* expected; size_t expected_len; } test_case_t;
`,
	"key_size_t": `typedef struct { int min_size; int max_size; int step_size; } key_size_t;
`,
}
