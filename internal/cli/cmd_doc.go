package cli

import (
	"fmt"
	"strings"

	"lifeplanner/internal/section"
	"lifeplanner/internal/vault"
)

const docHelp = `  doc <name>                   Show a planner document (mission|values|
                               have-do-be|promise|quotes|exercises)
  doc mission set <text>       Replace the mission body
  doc <table> add <cells...>   Append a row to a table document`

// tableDoc describes one fixed-purpose pipe-table document.
type tableDoc struct {
	docType vault.DocType
	title   string
	columns []string
}

// The table document catalog. Column labels are part of the stored
// format, so they are fixed here rather than configured.
var tableDocs = map[string]tableDoc{
	"values":     {vault.DocValues, "価値観", []string{"価値観", "説明文"}},
	"have-do-be": {vault.DocHaveDoBe, "Have Do Be", []string{"種別", "内容"}},
	"promise":    {vault.DocPromise, "約束", []string{"処理", "誰と", "何を？"}},
	"quotes":     {vault.DocQuotes, "心に残った言葉・座右の銘", []string{"種別", "内容"}},
}

func cmdDoc(o *IO, planner *app, args []string) error {
	if len(args) == 0 || hasHelpFlag(args) {
		printDocHelp(o)

		return nil
	}

	name := args[0]
	rest := args[1:]

	if name == "mission" {
		return docMission(o, planner, rest)
	}

	if name == "exercises" {
		if len(rest) > 0 {
			return fmt.Errorf("unexpected argument: %s", rest[0])
		}

		return docExercises(o, planner)
	}

	table, ok := tableDocs[name]
	if !ok {
		return fmt.Errorf("unknown document: %s", name)
	}

	return docTable(o, planner, table, rest)
}

func docMission(o *IO, planner *app, args []string) error {
	svc := section.NewSimpleService(planner.storage, vault.DocMission, "ミッション", planner.cfg.BaseDir)

	if len(args) > 0 {
		if args[0] != "set" {
			return fmt.Errorf("unknown doc subcommand: %s", args[0])
		}

		body := strings.TrimSpace(strings.Join(args[1:], " "))
		if body == "" {
			return fmt.Errorf("%w: mission text", errMissingArgument)
		}

		saveErr := svc.Save(body)
		if saveErr != nil {
			return saveErr
		}

		o.Println("saved")

		return nil
	}

	body, err := svc.Load()
	if err != nil {
		return err
	}

	if body == "" {
		o.Println("(empty)")

		return nil
	}

	o.Println(body)

	return nil
}

func docTable(o *IO, planner *app, doc tableDoc, args []string) error {
	svc := section.NewTableService(
		planner.storage, doc.docType, doc.title, doc.columns, planner.cfg.BaseDir, planner.cfg.DefaultTags,
	)

	if len(args) > 0 {
		if args[0] != "add" {
			return fmt.Errorf("unknown doc subcommand: %s", args[0])
		}

		return docTableAdd(o, svc, doc, args[1:])
	}

	rows, err := svc.LoadRows()
	if err != nil {
		return err
	}

	o.Println(strings.Join(doc.columns, " | "))

	for _, row := range dropBlankRows(rows) {
		o.Println(strings.Join(row, " | "))
	}

	return nil
}

// dropBlankRows removes all-empty rows. Stored tables keep one blank
// placeholder row when empty; it is not data.
func dropBlankRows(rows [][]string) [][]string {
	kept := make([][]string, 0, len(rows))

	for _, row := range rows {
		blank := true

		for _, cell := range row {
			if cell != "" {
				blank = false

				break
			}
		}

		if !blank {
			kept = append(kept, row)
		}
	}

	return kept
}

func docTableAdd(o *IO, svc *section.TableService, doc tableDoc, cells []string) error {
	if len(cells) != len(doc.columns) {
		return fmt.Errorf("expected %d cells (%s), got %d",
			len(doc.columns), strings.Join(doc.columns, ", "), len(cells))
	}

	rows, err := svc.LoadRows()
	if err != nil {
		return err
	}

	rows = append(dropBlankRows(rows), cells)

	saveErr := svc.SaveRows(rows)
	if saveErr != nil {
		return saveErr
	}

	o.Println("added")

	return nil
}

func docExercises(o *IO, planner *app) error {
	svc := section.NewService(
		planner.storage, vault.DocExercises, "自己分析エクササイズ", planner.cfg.BaseDir, planner.cfg.DefaultTags,
	)

	sections, err := svc.LoadSections(exerciseDefs)
	if err != nil {
		return err
	}

	for idx, def := range exerciseDefs {
		if idx > 0 {
			o.Println("")
		}

		o.Println("## " + def.Title)

		body := sections[def.Title]
		if body == "" {
			o.Println("(empty)")

			continue
		}

		o.Println(body)
	}

	return nil
}

// exerciseDefs is the self-analysis worksheet catalog. The question
// lists double as legacy cleanup filters: older documents stored the
// prompts inline in the body.
var exerciseDefs = []section.Def{
	section.QuestionsDef("価値観分析", "", []string{
		"あなたはなぜ今の会社(学校)に入りましたか？",
		"あなたはなぜ今の趣味を始めたのですか？",
		"あなたはなぜこの場所に住んでるのですか？",
		"これまでに会った人で、ぜひもう一度会いたいと思う人は？",
		"あなたが一番好きな言葉は？",
		"あなたがこれまでに読んだ一番好きな本は？",
		"これまでの仕事で一番充実していたことは？いつ？どんな仕事？なぜ？",
		"家族との思い出で一番楽しかったことは？いつ？どんな内容？なぜ？",
		"人と接する上で何が一番大切ですか？",
		"失うと気力がなくなるものはなんですか？",
		"今後の人生において最も身につけたい才能や能力は何ですか？",
		"あなたがこれまで最もわくわくしたことはどのようなことでしたか？",
		"あなたが心のそこから「リラックス」できる時間はどのような時ですか？",
		"あなたの理想とする人は、何をもっとも大事にしているのでしょうか？",
		"人生の中で学ぶことの多かった失敗、挫折体験は何ですか？",
		"仕事とプライベートで共通して言える指針は何ですか？",
		"あなたの人生の中で、充実感の高かった成功体験はなんでしたか？",
		"毎日の生活で気をつけていることは何ですか？",
		"私生活で最も価値があると考える行動は何ですか？",
		"今、十分な時間があれば誰と何をしたいですか？",
		"これからの人生で一番実現したいことは何ですか？",
		"あなたの理想とする人生はどのようなことをして成し遂げた人ですか？",
		"あなたの人生の中で大きな影響を受けた人はどんな点が最も優れていましたか？",
	}),
	section.QuestionsDef("余命1年リスト", "", []string{
		"「余命1年」だったら何をしたい？",
	}),
	section.QuestionsDef("あと100年人生リスト", "", []string{
		"健康体であと100年生きられるとしたら何をしたい？",
	}),
	section.QuestionsDef("死ぬまでにやりたいこと", "", []string{
		"何をしたい？",
	}),
	section.QuestionsDef("立場を変えて考える", "", []string{
		"誰の立場で考えますか？",
		"その人はあなたに対して何を望んでますか？何をいやだと思ってますか？",
		"望まれていることを実現するにはどうしたら良いですか？",
	}),
	section.QuestionsDef("憧れの人物", "", []string{
		"誰の？どんなところ？",
	}),
	section.QuestionsDef("20年後の自分へインタビュー", "", []string{
		"誰と一緒でしたか？",
		"どのような車に乗り、どんな身なりでしたか？",
		"今現在どんな仕事をしているようでしたか？",
		"どんな所に住んでいそうでしたか？",
		"あなたが今一番大切なものは何ですか？",
		"あなたがそのような成功を収めたのはどうしてでしょうか？",
		"そのように運にも恵まれるには、あなたが何をしてきたからですか？",
		"今思えば何が転機でしたか？そこでどんな判断をしたのですか？",
		"今、何をしているときが一番楽しいですか？",
		"あなたを一番支えてくれた人は誰でしたか？",
	}),
}

func printDocHelp(o *IO) {
	o.Println("Usage: lp doc <name> [subcommand]")
	o.Println("")
	o.Println(docHelp)
}
