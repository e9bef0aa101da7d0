// Package compress provides compression codecs for encoded key blocks.
//
// Primary-key blocks batch many encoded rows with heavily repeated label
// values, so even fast compressors recover most of the redundancy a row codec
// leaves behind. Three algorithms are offered alongside a no-op baseline:
//
//   - Zstd: best ratio, used when blocks are written once and read rarely.
//   - S2: fastest, used on hot encode/decode paths.
//   - LZ4: balanced, block-format compatible with other tooling.
//
// All codecs are stateless values safe for concurrent use; pooled
// encoder/decoder state is managed internally.
package compress
