package locale

import "golang.org/x/text/language"

var tables = map[language.Tag]map[string]string{
	language.English: {
		"error.parser.ce.empty_expression":           "Empty expression.",
		"error.parser.ce.no_content":                 "There is no content between these two operators.",
		"error.parser.ce.mixed_form":                 "The chemical equation mixed normal form and auto-arranging form.",
		"error.parser.ce.duplicated_equal_sign":      "Duplicated equal sign.",
		"error.parser.ce.only_one_molecule":          "There is only one molecule in the chemical equation.",
		"error.parser.ce.no_equal_sign":              "There is no equal sign in this chemical equation.",
		"error.parser.molecule.unexpected_character": "Unexpected character '%[1]s'.",
		"error.parser.molecule.parenthesis_mismatch": "Parenthesis mismatch at '%[1]s'.",
		"error.parser.molecule.no_content":           "There is no content inside '%[1]s'.",
		"error.parser.molecule.invalid_electronic":   "Invalid electronic descriptor '%[1]s', expected e+ or e- with an optional count.",
		"error.parser.molecule.empty":                "Molecule '%[1]s' has no content.",
		"error.logic.arranger.multi_answer":          "Can't balance chemical equations that have multiple answers.",
		"error.logic.arranger.zero_coefficient":      "The coefficient of molecule '%[1]s' is zero.",
		"error.logic.arranger.wrong_side":            "Molecule '%[1]s' is on the wrong side of the chemical equation.",
		"error.logic.other.side_eliminated.all":      "All molecules in the chemical equation was eliminated.",
		"error.logic.other.side_eliminated.left":     "All molecules on the left side of the chemical equation was eliminated.",
		"error.logic.other.side_eliminated.right":    "All molecules on the right side of the chemical equation was eliminated.",
		"error.logic.other.conflicted_equations":     "This chemical equation is conflicted, and it can't be balanced.",
	},
	language.SimplifiedChinese: {
		"error.parser.ce.empty_expression":           "表达式为空。",
		"error.parser.ce.no_content":                 "两个运算符之间没有内容。",
		"error.parser.ce.mixed_form":                 "化学方程式混用了普通形式和自动排列形式。",
		"error.parser.ce.duplicated_equal_sign":      "等号重复。",
		"error.parser.ce.only_one_molecule":          "化学方程式中只有一个分子。",
		"error.parser.ce.no_equal_sign":              "化学方程式中没有等号。",
		"error.parser.molecule.unexpected_character": "意外的字符 '%[1]s'。",
		"error.parser.molecule.parenthesis_mismatch": "括号 '%[1]s' 不匹配。",
		"error.parser.molecule.no_content":           "'%[1]s' 中没有内容。",
		"error.parser.molecule.invalid_electronic":   "无效的电荷描述 '%[1]s'，应为 e+ 或 e-，可带数量。",
		"error.parser.molecule.empty":                "分子 '%[1]s' 没有内容。",
		"error.logic.arranger.multi_answer":          "无法配平有多组解的化学方程式。",
		"error.logic.arranger.zero_coefficient":      "分子 '%[1]s' 的系数为零。",
		"error.logic.arranger.wrong_side":            "分子 '%[1]s' 位于化学方程式错误的一边。",
		"error.logic.other.side_eliminated.all":      "化学方程式中的所有分子都被消去了。",
		"error.logic.other.side_eliminated.left":     "化学方程式左边的所有分子都被消去了。",
		"error.logic.other.side_eliminated.right":    "化学方程式右边的所有分子都被消去了。",
		"error.logic.other.conflicted_equations":     "该化学方程式存在矛盾，无法配平。",
	},
}
