package markup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/architect/internal/data"
)

func TestExpandRepeatBlockPerRecord(t *testing.T) {
	t.Parallel()

	source := `items = [{ name: 'A' }, { name: 'B' }, { name: 'C' }];`
	template := `<ul><li *ngFor="let it of items" class="row" (click)="pick(it)">{{ it.name }}</li></ul>`

	out := Expand(template, source, nil)
	require.Equal(t, "<ul><li class=\"row\">A</li>\n<li class=\"row\">B</li>\n<li class=\"row\">C</li></ul>", out)
	require.Equal(t, 3, strings.Count(out, "<li"))
}

func TestExpandUsesPlaceholderRecordsForUnknownSequence(t *testing.T) {
	t.Parallel()

	out := Expand(`<div *ngFor="let p of missing" class="card">{{ p.title }} - {{p.value}}</div>`, "", nil)
	require.Equal(t, 3, strings.Count(out, `<div class="card">`))
	require.Contains(t, out, "Item 1 - 100")
	require.Contains(t, out, "Item 3 - 300")
}

func TestExpandRepeatGuardTerminates(t *testing.T) {
	t.Parallel()

	// Every copy injects a fresh repeat block through its field value.
	source := `items = [{ html: '<b *ngFor="let y of items">{{y.html}}</b>' }];`
	template := `<b *ngFor="let y of items">{{y.html}}</b>`

	out := Expand(template, source, nil)
	require.NotContains(t, out, "ngFor")
	count := strings.Count(out, "<b>")
	require.GreaterOrEqual(t, count, MaxRepeatExpansions)
	require.LessOrEqual(t, count, MaxRepeatExpansions+2)
}

func TestExpandInlineTemplate(t *testing.T) {
	t.Parallel()

	source := "@Component({ selector: 'app-user', template: `<div>{{user.name}}</div>` })\nexport class UserComponent { users = [{ name: 'Ada' }]; }"
	require.Equal(t, "<div>Ada</div>", Expand("", source, nil))

	withoutData := "@Component({ selector: 'app-user', template: `<div>{{user.name}}</div>` })"
	require.Equal(t, "<div>name</div>", Expand("<!-- see component -->", withoutData, nil))
}

func TestExpandMalformedLiteralFallsBackToFieldName(t *testing.T) {
	t.Parallel()

	source := `broken = [computeValue()];`
	out := Expand(`<p class="title">{{ broken.label }} here</p>`, source, nil)
	require.Equal(t, `<p class="title">label here</p>`, out)

	out = Expand(`<li *ngFor="let b of broken" class="x">{{ b.label }}</li><hr>`, source, nil)
	require.Equal(t, "<hr>", out, "an empty sequence renders no copies")
}

func TestExpandTrailingCommaLiteralFallsBackToFieldName(t *testing.T) {
	t.Parallel()

	source := `stats = [ { label: 'Users', value: 10 }, { label: 'Orders', value: 20, }, ];`
	out := Expand(`<p class="title">{{ stats.label }}</p>`, source, nil)
	require.Equal(t, `<p class="title">label</p>`, out)
}

func TestExpandUnaryExpressionsFallBackToFieldName(t *testing.T) {
	t.Parallel()

	out := Expand(`<p class="title">{{ !flag }} / {{ -count }}</p>`, "", nil)
	require.Equal(t, `<p class="title">flag / count</p>`, out)

	out = Expand(`<p class="title">{{ !items.name }}</p>`, `items = [{ name: 'A' }];`, nil)
	require.Equal(t, `<p class="title">A</p>`, out)
}

func TestExpandStyleBinding(t *testing.T) {
	t.Parallel()

	source := `bars = [{ value: 40, color: '#6366f1' }];`
	template := `<div *ngFor="let b of bars; let i = index" style="height: 8px" [ngStyle]="{'width.px': b.value, 'background': b.color, opacity: 0.5, border: b.missing}">{{ i }}</div>`

	out := Expand(template, source, nil)
	require.Equal(t, `<div style="height: 8px;width:40px;background:#6366f1;opacity:0.5">0</div>`, out)
}

func TestExpandScalarItems(t *testing.T) {
	t.Parallel()

	out := Expand(`<span *ngFor="let t of tags" class="chip">{{ t }}</span>`, `tags = ['a', 'b'];`, nil)
	require.Equal(t, "<span class=\"chip\">a</span>\n<span class=\"chip\">b</span>", out)
}

func TestExpandNestedSameNameElements(t *testing.T) {
	t.Parallel()

	out := Expand(`<div *ngFor="let r of rows"><div class="cell">{{ r.v }}</div></div>`, `rows = [{ v: 1 }, { v: 2 }];`, nil)
	require.Equal(t, "<div><div class=\"cell\">1</div></div>\n<div><div class=\"cell\">2</div></div>", out)
}

func TestExpandMapsLibraryTags(t *testing.T) {
	t.Parallel()

	template := `<mat-card class="elevated"><mat-card-title>Hi</mat-card-title>` +
		`<mat-form-field appearance="outline"><mat-label>Email</mat-label>` +
		`<input matInput formControlName="email" [disabled]="x" #box></mat-form-field>` +
		`<mat-icon>home</mat-icon><mat-divider/></mat-card>`

	want := `<div class="mat-card elevated"><div class="mat-card-title">Hi</div>` +
		`<div class="field" appearance="outline"><label>Email</label><input></div>` +
		`<span class="mat-icon">home</span><div class="mat-divider"></div></div>`

	require.Equal(t, want, Expand(template, "", nil))
}

func TestExpandStripsBindings(t *testing.T) {
	t.Parallel()

	template := `<button mat-raised-button [(ngModel)]="v" *ngIf="ok" (click)="go()" type="submit">{{ 'Save' }}</button>`
	require.Equal(t, `<button type="submit">Save</button>`, Expand(template, "", nil))
}

func TestExpandPlaceholder(t *testing.T) {
	t.Parallel()

	require.Equal(t, Placeholder, Expand("", "export class Empty {}", nil))
	require.Equal(t, Placeholder, Expand("<!-- nothing -->", "", nil))
	require.Equal(t, "<b>Hi</b>", Expand("<b>Hi</b>", "", nil))
}

func TestExpandUsesSuppliedContext(t *testing.T) {
	t.Parallel()

	ctx := data.NewContext()
	ctx.Set("people", []data.Record{{"name": "Grace"}})

	out := Expand(`<p *ngFor="let p of people">{{ p.name }}</p>`, "people = [{ name: 'ignored' }];", ctx)
	require.Equal(t, "<p>Grace</p>", out)
}

func TestTemplateSource(t *testing.T) {
	t.Parallel()

	long := `<section class="hero">Welcome</section>`
	require.Equal(t, long, TemplateSource("  "+long+"\n", "template: `<p>inline</p>`"))
	require.Equal(t, "<p>inline</p>", TemplateSource("<p>x</p>", "template: `<p>inline</p>`"))
	require.Equal(t, "<i>single</i>", InlineTemplate(`template: '<i>single</i>'`))
	require.Equal(t, "", InlineTemplate(`templateUrl: './x.html'`))
}

func TestStaticStyle(t *testing.T) {
	t.Parallel()

	resolve := func(ref string) (string, bool) {
		if ref == "row.size" {
			return "12", true
		}
		return "", false
	}

	require.Equal(t, "font-size:12em;color:red", staticStyle(`{'font-size.em': row.size, "color": 'red'}`, resolve))
	require.Equal(t, "", staticStyle(`{ color: active ? 'red' : 'blue' }`, resolve))
	require.Equal(t, "", staticStyle(`styleObject`, resolve))
}
