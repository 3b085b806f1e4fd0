package endgamedb

// manifestEntry is one row of the endgame database manifest: the name,
// expected size and CRC of a database file, the piece count it covers,
// and (for 4/5/6-piece files) the block/segment index width used to
// seek inside it. Grounded on original_source/core/end.c's end_set[].
type manifestEntry struct {
	size    int64
	pcCount int
	idx     int // -1 where end.c has no block index for this file
	crc     uint16
	name    string
}

// manifest mirrors end_set[] verbatim: sizes, piece counts, index
// widths and CRC-16/CCITT-FALSE checksums are copied from the
// original table, since they describe a fixed, external file format
// this package must match byte for byte.
var manifest = []manifestEntry{
	{2500, 2, -1, 0xd2d8, "OvO.bin"},
	{2500, 2, -1, 0x6915, "XvO.bin"},
	{2500, 2, -1, 0xb1a5, "OvX.bin"},
	{2500, 2, -1, 0x7585, "XvX.bin"},
	{125000, 3, -1, 0x9965, "OOvO.bin"},
	{125000, 3, -1, 0x3184, "OOvX.bin"},
	{125000, 3, -1, 0x13ea, "OvOO.bin"},
	{125000, 3, -1, 0xec9f, "OvXO.bin"},
	{125000, 3, -1, 0x74bd, "OvXX.bin"},
	{125000, 3, -1, 0xf732, "XOvO.bin"},
	{125000, 3, -1, 0x6cab, "XOvX.bin"},
	{125000, 3, -1, 0x9752, "XvOO.bin"},
	{125000, 3, -1, 0xa0f7, "XvXO.bin"},
	{125000, 3, -1, 0xf548, "XvXX.bin"},
	{125000, 3, -1, 0xc2ae, "XXvO.bin"},
	{125000, 3, -1, 0x703d, "XXvX.bin"},
	{347326, 4, 0, 0x9444, "OOOvO.cpr"},
	{185557, 4, 1, 0x8659, "OOOvX.cpr"},
	{431432, 4, 2, 0xf6fb, "OOvOO.cpr"},
	{960067, 4, 3, 0x6fe2, "OOvXO.cpr"},
	{648003, 4, 4, 0x369a, "OOvXX.cpr"},
	{280344, 4, 5, 0xc0ee, "OvOOO.cpr"},
	{1027656, 4, 6, 0x45d1, "OvXOO.cpr"},
	{1324595, 4, 7, 0x5b3d, "OvXXO.cpr"},
	{508845, 4, 8, 0x5897, "OvXXX.cpr"},
	{1369691, 4, 9, 0x85d6, "XOOvO.cpr"},
	{960613, 4, 10, 0xec0b, "XOOvX.cpr"},
	{1484517, 4, 11, 0x4648, "XOvOO.cpr"},
	{1530033, 4, 12, 0xe1e6, "XOvXO.cpr"},
	{357807, 4, 13, 0x11e1, "XOvXX.cpr"},
	{298268, 4, 14, 0xdc0d, "XvOOO.cpr"},
	{517263, 4, 15, 0xe205, "XvXOO.cpr"},
	{375668, 4, 16, 0xd23b, "XvXXO.cpr"},
	{128906, 4, 17, 0x5695, "XvXXX.cpr"},
	{1579352, 4, 18, 0xdf97, "XXOvO.cpr"},
	{1339555, 4, 19, 0x1584, "XXOvX.cpr"},
	{862757, 4, 20, 0x05d3, "XXvOO.cpr"},
	{1180204, 4, 21, 0x8282, "XXvXO.cpr"},
	{262388, 4, 22, 0xc7a1, "XXvXX.cpr"},
	{559505, 4, 23, 0x4d97, "XXXvO.cpr"},
	{548310, 4, 24, 0xb61a, "XXXvX.cpr"},
	{1831050, 4, -1, 0x91d7, "end4.idx"},
	{102478, 5, 3, 0x886a, "OOOOvO.cpr"},
	{926123, 5, 3, 0x671e, "OOOOvX.cpr"},
	{1111011, 5, 3, 0xd4fc, "OOOvOO.cpr"},
	{1838556, 5, 3, 0xa2ac, "OOOvXO.cpr"},
	{1005367, 5, 3, 0x5ccd, "OOOvXX.cpr"},
	{943757, 5, 3, 0x4010, "OOvOOO.cpr"},
	{2300897, 5, 3, 0x68ad, "OOvXOO.cpr"},
	{2102270, 5, 3, 0xe398, "OOvXXO.cpr"},
	{715710, 5, 3, 0x54ee, "OOvXXX.cpr"},
	{384439, 5, 3, 0x49ce, "OvOOOO.cpr"},
	{291240, 5, 3, 0xdbc6, "OvXOOO.cpr"},
	{271182, 5, 3, 0x3d7f, "OvXXOO.cpr"},
	{140775, 5, 3, 0x1822, "OvXXXO.cpr"},
	{31508, 5, 3, 0x0353, "OvXXXX.cpr"},
	{96010, 5, 3, 0x2ee1, "XOOOvO.cpr"},
	{1598227, 5, 3, 0xbc6b, "XOOOvX.cpr"},
	{1623319, 5, 3, 0x4587, "XOOvOO.cpr"},
	{4438023, 5, 3, 0x347c, "XOOvXO.cpr"},
	{1218583, 5, 3, 0x1c4d, "XOOvXX.cpr"},
	{1305895, 5, 3, 0x956f, "XOvOOO.cpr"},
	{2087565, 5, 3, 0x8b9a, "XOvXOO.cpr"},
	{2173717, 5, 3, 0x47f1, "XOvXXO.cpr"},
	{1120920, 5, 3, 0x6d93, "XOvXXX.cpr"},
	{560961, 5, 3, 0xd125, "XvOOOO.cpr"},
	{2353517, 5, 3, 0xa154, "XvXOOO.cpr"},
	{1474560, 5, 3, 0x07a0, "XvXXOO.cpr"},
	{321272, 5, 3, 0xb9ed, "XvXXXO.cpr"},
	{34366, 5, 3, 0x626a, "XvXXXX.cpr"},
	{142178, 5, 3, 0x6634, "XXOOvO.cpr"},
	{1159143, 5, 3, 0x32fc, "XXOOvX.cpr"},
	{1252369, 5, 3, 0x13c6, "XXOvOO.cpr"},
	{6779380, 5, 3, 0x77f4, "XXOvXO.cpr"},
	{1629654, 5, 3, 0xaaa1, "XXOvXX.cpr"},
	{655089, 5, 3, 0xbdf2, "XXvOOO.cpr"},
	{1983928, 5, 3, 0x4ec6, "XXvXOO.cpr"},
	{964488, 5, 3, 0xf331, "XXvXXO.cpr"},
	{141643, 5, 3, 0x3365, "XXvXXX.cpr"},
	{102616, 5, 3, 0xe25a, "XXXOvO.cpr"},
	{420087, 5, 3, 0x74e3, "XXXOvX.cpr"},
	{273072, 5, 3, 0x3387, "XXXvOO.cpr"},
	{2707992, 5, 3, 0x4dee, "XXXvXO.cpr"},
	{701054, 5, 3, 0xe919, "XXXvXX.cpr"},
	{27937, 5, 3, 0xa500, "XXXXvO.cpr"},
	{64147, 5, 3, 0xe207, "XXXXvX.cpr"},
	{7234339, 6, 4, 0xd971, "OOOOvOO.cpr"},
	{23494768, 6, 4, 0x3037, "OOOOvXO.cpr"},
	{10320134, 6, 4, 0xf6ee, "OOOOvXX.cpr"},
	{8772900, 6, 4, 0x7bab, "OOvOOOO.cpr"},
	{20664945, 6, 4, 0xeb18, "OOvXOOO.cpr"},
	{22817985, 6, 4, 0x6216, "OOvXXOO.cpr"},
	{14314276, 6, 4, 0x9a5c, "OOvXXXO.cpr"},
	{3598072, 6, 4, 0x6bc5, "OOvXXXX.cpr"},
	{9548262, 6, 4, 0x7591, "XOOOvOO.cpr"},
	{104771602, 6, 4, 0x6f77, "XOOOvXO.cpr"},
	{21718073, 6, 4, 0x221a, "XOOOvXX.cpr"},
	{14395823, 6, 4, 0xd92b, "XOvOOOO.cpr"},
	{84891019, 6, 4, 0x6aed, "XOvXOOO.cpr"},
	{160451697, 6, 4, 0xd0c2, "XOvXXOO.cpr"},
	{112731973, 6, 4, 0xdc72, "XOvXXXO.cpr"},
	{32416296, 6, 4, 0x8b1c, "XOvXXXX.cpr"},
	{6480534, 6, 4, 0xa0f5, "XXOOvOO.cpr"},
	{93929899, 6, 4, 0x67ac, "XXOOvXO.cpr"},
	{48279904, 6, 4, 0x3da7, "XXOOvXX.cpr"},
	{6855364, 6, 4, 0xca62, "XXvOOOO.cpr"},
	{19138755, 6, 4, 0x0023, "XXvXOOO.cpr"},
	{21129962, 6, 4, 0x4389, "XXvXXOO.cpr"},
	{16008194, 6, 4, 0x49da, "XXvXXXO.cpr"},
	{6468983, 6, 4, 0x8496, "XXvXXXX.cpr"},
	{3506241, 6, 4, 0xbcac, "XXXOvOO.cpr"},
	{40084503, 6, 4, 0x6f5b, "XXXOvXO.cpr"},
	{43690342, 6, 4, 0x08ed, "XXXOvXX.cpr"},
	{821062, 6, 4, 0x744e, "XXXXvOO.cpr"},
	{6904967, 6, 4, 0x0146, "XXXXvXO.cpr"},
	{12926925, 6, 4, 0xc5f8, "XXXXvXX.cpr"},
	{244649, 6, 4, 0x2f4c, "OOOOOvO.cpr"},
	{3350730, 6, 4, 0x9e0d, "OOOOOvX.cpr"},
	{915053, 6, 4, 0x6eaa, "OvOOOOO.cpr"},
	{1632688, 6, 4, 0x2380, "OvXOOOO.cpr"},
	{2879263, 6, 4, 0xbdee, "OvXXOOO.cpr"},
	{2954338, 6, 4, 0x09e4, "OvXXXOO.cpr"},
	{1575066, 6, 4, 0xc01a, "OvXXXXO.cpr"},
	{339753, 6, 4, 0x1a58, "OvXXXXX.cpr"},
	{1179521, 6, 4, 0x05a2, "XOOOOvO.cpr"},
	{4744837, 6, 4, 0xe5cc, "XOOOOvX.cpr"},
	{2527260, 6, 4, 0x6763, "XvOOOOO.cpr"},
	{5063251, 6, 4, 0x5f7e, "XvXOOOO.cpr"},
	{5681974, 6, 4, 0x926b, "XvXXOOO.cpr"},
	{4056861, 6, 4, 0xee75, "XvXXXOO.cpr"},
	{1847962, 6, 4, 0x715f, "XvXXXXO.cpr"},
	{384185, 6, 4, 0x9ce9, "XvXXXXX.cpr"},
	{2581906, 6, 4, 0x23f8, "XXOOOvO.cpr"},
	{6024692, 6, 4, 0x6e01, "XXOOOvX.cpr"},
	{2821796, 6, 4, 0xa82c, "XXXOOvO.cpr"},
	{4956211, 6, 4, 0x897c, "XXXOOvX.cpr"},
	{1539164, 6, 4, 0x94fd, "XXXXOvO.cpr"},
	{2315509, 6, 4, 0x1a5b, "XXXXOvX.cpr"},
	{335200, 6, 4, 0xc7f1, "XXXXXvO.cpr"},
	{460790, 6, 4, 0x7695, "XXXXXvX.cpr"},
	{12675853, 6, 4, 0xd510, "OOOvOOO.cpr"},
	{34899952, 6, 4, 0x29a0, "OOOvXOO.cpr"},
	{35060337, 6, 4, 0xc88b, "OOOvXXO.cpr"},
	{11722444, 6, 4, 0x7902, "OOOvXXX.cpr"},
	{26592055, 6, 4, 0xd77a, "XOOvOOO.cpr"},
	{70357335, 6, 4, 0x1cf5, "XOOvXOO.cpr"},
	{47770514, 6, 4, 0x3638, "XOOvXXO.cpr"},
	{14779414, 6, 4, 0x4457, "XOOvXXX.cpr"},
	{21792974, 6, 4, 0x1c50, "XXOvOOO.cpr"},
	{106575569, 6, 4, 0x0174, "XXOvXOO.cpr"},
	{57675073, 6, 4, 0x318e, "XXOvXXO.cpr"},
	{8600231, 6, 4, 0x8c4a, "XXOvXXX.cpr"},
	{4489583, 6, 4, 0x5384, "XXXvOOO.cpr"},
	{39089396, 6, 4, 0x1816, "XXXvXOO.cpr"},
	{22468300, 6, 4, 0x8cb4, "XXXvXXO.cpr"},
	{3300124, 6, 4, 0x97f5, "XXXvXXX.cpr"},
}

// endVal de-compresses a 4-piece file's non-repeat byte codes into
// signed distance-to-win values (100 marks a draw); the table repeats
// every 64 entries with a tail adjustment on the 3rd and 4th repeats.
// Grounded on end.c's end_val[].
var endVal = [256]int8{
	0, 1, -2, 3, -4, 5, -6, 7, -8, 9, -10, 11, -12, 13, -14, 15,
	-16, 17, -18, 19, -20, 21, -22, 23, -24, 25, -26, 27, -28, 29, -30, 31,
	-32, 33, -34, 35, -36, 37, -38, 39, -40, 41, -42, 43, -44, 45, -46, 47,
	-48, 49, -50, 51, -52, 53, -54, 55, -56, 57, -58, 59, -60, 100, 100, 100,
	0, 1, -2, 3, -4, 5, -6, 7, -8, 9, -10, 11, -12, 13, -14, 15,
	-16, 17, -18, 19, -20, 21, -22, 23, -24, 25, -26, 27, -28, 29, -30, 31,
	-32, 33, -34, 35, -36, 37, -38, 39, -40, 41, -42, 43, -44, 45, -46, 47,
	-48, 49, -50, 51, -52, 53, -54, 55, -56, 57, -58, 59, -60, 100, 100, 100,
	0, 1, -2, 3, -4, 5, -6, 7, -8, 9, -10, 11, -12, 13, -14, 15,
	-16, 17, -18, 19, -20, 21, -22, 23, -24, 25, -26, 27, -28, 29, -30, 31,
	-32, 33, -34, 35, -36, 37, -38, 39, -40, 41, -42, 43, -44, 45, -46, 47,
	-48, 49, -50, 51, -52, 53, -54, 55, -56, 57, -58, 59, -60, 100, 100, 0,
	0, 1, -2, 3, -4, 5, -6, 7, -8, 9, -10, 11, -12, 13, -14, 15,
	-16, 17, -18, 19, -20, 21, -22, 23, -24, 25, -26, 27, -28, 29, -30, 31,
	-32, 33, -34, 35, -36, 37, -38, 39, -40, 41, -42, 43, -44, 45, -46, 47,
	-48, 49, -50, 51, -52, 53, -54, 55, -56, 57, -58, 59, -60, 100, 100, 0,
}

// endAmt holds the matching repeat count for each endVal code.
// Grounded on end.c's end_amt[].
var endAmt = [256]int8{
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 5, 9,
	2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2,
	2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2,
	2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2,
	2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 6, 10,
	3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3,
	3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3,
	3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3,
	3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 7, 0,
	4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4,
	4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4,
	4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4,
	4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 8, 0,
}
